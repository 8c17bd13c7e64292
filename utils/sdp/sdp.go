// Package sdp describes assembled header sets as SDP media sections, the way
// an RTSP ANNOUNCE or DESCRIBE carries them out of band.
package sdp

import (
	"github.com/ugparu/hostheader"
)

// Session represents the information related to an SDP session.
type Session struct {
	URI string
}

// Media represents the information related to a media stream in an SDP session.
type Media struct {
	Type        hostheader.CodecType
	PayloadType int
	TimeScale   int
	Control     string
	FPS         int
	Width       int
	Height      int

	// SpropParameterSets holds H.264 SPS and PPS without start codes.
	SpropParameterSets [][]byte
	// Config holds the MPEG-4 VOS/VO/VOL bytes.
	Config []byte
	// ProfileLevelID is the MPEG-4 profile_and_level_indication. H.264 takes
	// its profile-level-id from the SPS.
	ProfileLevelID int
}

const (
	dynamicPayloadType = 96
	jpegPayloadType    = 26
	videoClockRate     = 90000
)

func defaultPayloadType(ct hostheader.CodecType) int {
	if ct == hostheader.JPEG {
		return jpegPayloadType
	}
	return dynamicPayloadType
}

func rtpmapEncoding(ct hostheader.CodecType) string {
	switch ct {
	case hostheader.H264:
		return "H264"
	case hostheader.MPEG4:
		return "MP4V-ES"
	case hostheader.H263:
		return "H263-1998"
	case hostheader.JPEG:
		return "JPEG"
	default:
		return ""
	}
}

func codecFromEncoding(enc string) hostheader.CodecType {
	for _, ct := range []hostheader.CodecType{hostheader.H264, hostheader.MPEG4, hostheader.H263, hostheader.JPEG} {
		if rtpmapEncoding(ct) == enc {
			return ct
		}
	}
	return 0
}

// ResolvedPayloadType returns PayloadType, or the codec default when unset.
func (m Media) ResolvedPayloadType() int {
	if m.PayloadType != 0 {
		return m.PayloadType
	}
	return defaultPayloadType(m.Type)
}

// ResolvedTimeScale returns TimeScale, or the 90 kHz video clock when unset.
func (m Media) ResolvedTimeScale() int {
	if m.TimeScale != 0 {
		return m.TimeScale
	}
	return videoClockRate
}
