package sdp

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const spsProfileLevelBytes = 4

// Generate builds an SDP suitable for RTSP ANNOUNCE/RECORD. Parse reads it back.
func Generate(sess Session, medias []Media) string {
	lines := make([]string, 0, 32) //nolint:mnd

	lines = append(lines,
		"v=0",
		"o=- 0 0 IN IP4 127.0.0.1",
		"s=hostheader",
		"t=0 0",
	)
	if sess.URI != "" {
		lines = append(lines, "u="+sess.URI)
	}
	lines = append(lines, "a=control:*")

	for _, m := range medias {
		lines = append(lines, marshalMedia(m)...)
	}

	// RTSP bodies conventionally use CRLF.
	return strings.Join(lines, "\r\n") + "\r\n"
}

func marshalMedia(m Media) []string {
	pt := m.ResolvedPayloadType()
	ts := m.ResolvedTimeScale()

	lines := make([]string, 0, 8) //nolint:mnd
	lines = append(lines, fmt.Sprintf("m=video 0 RTP/AVP %d", pt))

	if enc := rtpmapEncoding(m.Type); enc != "" {
		lines = append(lines, fmt.Sprintf("a=rtpmap:%d %s/%d", pt, enc, ts))
	}
	if fmtp := fmtpLine(m, pt); fmtp != "" {
		lines = append(lines, "a=fmtp:"+fmtp)
	}
	if m.FPS > 0 {
		lines = append(lines, fmt.Sprintf("a=x-framerate:%d", m.FPS))
	}
	if m.Width > 0 && m.Height > 0 {
		lines = append(lines, fmt.Sprintf("a=x-dimensions:%d,%d", m.Width, m.Height))
	}
	if m.Control != "" {
		lines = append(lines, "a=control:"+m.Control)
	}

	return lines
}

func fmtpLine(m Media, pt int) string {
	switch rtpmapEncoding(m.Type) {
	case "H264":
		if len(m.SpropParameterSets) < 2 || len(m.SpropParameterSets[0]) < spsProfileLevelBytes {
			return ""
		}
		sps := m.SpropParameterSets[0]
		sets := make([]string, 0, len(m.SpropParameterSets))
		for _, ps := range m.SpropParameterSets {
			sets = append(sets, base64.StdEncoding.EncodeToString(ps))
		}
		return fmt.Sprintf("%d packetization-mode=1;profile-level-id=%s;sprop-parameter-sets=%s",
			pt, strings.ToUpper(hex.EncodeToString(sps[1:spsProfileLevelBytes])), strings.Join(sets, ","))
	case "MP4V-ES":
		if len(m.Config) == 0 {
			return ""
		}
		return fmt.Sprintf("%d profile-level-id=%d;config=%s",
			pt, m.ProfileLevelID, strings.ToUpper(hex.EncodeToString(m.Config)))
	default:
		return ""
	}
}
