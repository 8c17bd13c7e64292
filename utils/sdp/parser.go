package sdp

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
)

// parseMediaDescription parses the media description line.
func parseMediaDescription(fields []string) (*Media, bool) {
	if len(fields) < 2 || fields[0] != "video" { //nolint:mnd
		return nil, false
	}

	media := Media{}
	mfields := strings.Split(fields[1], " ")
	if len(mfields) >= 3 { //nolint:mnd
		media.PayloadType, _ = strconv.Atoi(mfields[2])
	}
	return &media, true
}

// parseRtpmap reads "<pt> <encoding>/<clock>".
func parseRtpmap(media *Media, val string) {
	parts := strings.SplitN(val, " ", 2) //nolint:mnd
	if len(parts) != 2 {                 //nolint:mnd
		return
	}
	enc := strings.Split(parts[1], "/")
	media.Type = codecFromEncoding(strings.ToUpper(enc[0]))
	if len(enc) > 1 {
		media.TimeScale, _ = strconv.Atoi(enc[1])
	}
}

// parseFmtp reads "<pt> key=value;key=value".
func parseFmtp(media *Media, val string) {
	parts := strings.SplitN(val, " ", 2) //nolint:mnd
	if len(parts) != 2 {                 //nolint:mnd
		return
	}
	for _, field := range strings.Split(parts[1], ";") {
		kv := strings.SplitN(strings.TrimSpace(field), "=", 2) //nolint:mnd
		if len(kv) != 2 {                                      //nolint:mnd
			continue
		}
		switch kv[0] {
		case "config":
			media.Config, _ = hex.DecodeString(kv[1])
		case "profile-level-id":
			if media.Type == 0 || rtpmapEncoding(media.Type) == "MP4V-ES" {
				media.ProfileLevelID, _ = strconv.Atoi(kv[1])
			}
		case "sprop-parameter-sets":
			for _, set := range strings.Split(kv[1], ",") {
				if set == "" {
					continue
				}
				if decoded, err := base64.StdEncoding.DecodeString(set); err == nil {
					media.SpropParameterSets = append(media.SpropParameterSets, decoded)
				}
			}
		}
	}
}

func parseAttribute(media *Media, attr string) {
	key, val, ok := strings.Cut(attr, ":")
	if !ok {
		return
	}
	switch key {
	case "control":
		media.Control = val
	case "rtpmap":
		parseRtpmap(media, val)
	case "fmtp":
		parseFmtp(media, val)
	case "x-framerate":
		media.FPS, _ = strconv.Atoi(strings.TrimSpace(val))
	case "x-dimensions":
		w, h, found := strings.Cut(val, ",")
		if found {
			media.Width, _ = strconv.Atoi(w)
			media.Height, _ = strconv.Atoi(h)
		}
	}
}

// Parse parses the SDP content and returns Session and Media information.
// Non-video media sections are skipped.
func Parse(content string) (sess Session, medias []Media) {
	var media *Media

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		typeval := strings.SplitN(line, "=", 2) //nolint:mnd
		if len(typeval) != 2 {                  //nolint:mnd
			continue
		}

		switch typeval[0] {
		case "m":
			fields := strings.SplitN(typeval[1], " ", 2) //nolint:mnd
			if newMedia, valid := parseMediaDescription(fields); valid {
				medias = append(medias, *newMedia)
				media = &medias[len(medias)-1]
			} else {
				media = nil
			}
		case "u":
			sess.URI = typeval[1]
		case "a":
			if media != nil {
				parseAttribute(media, typeval[1])
			}
		}
	}
	return
}
