package rtp

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"

	"github.com/ugparu/hostheader"
	"github.com/ugparu/hostheader/codec"
	"github.com/ugparu/hostheader/codec/h263"
	"github.com/ugparu/hostheader/codec/h264"
	"github.com/ugparu/hostheader/codec/mpeg4"
	"github.com/ugparu/hostheader/utils"
	"github.com/ugparu/hostheader/utils/nal"
	"github.com/ugparu/hostheader/utils/sdp"
)

const frameDuration = time.Second / 30

func readAll(t *testing.T, r *bytes.Buffer) []*rtp.Packet {
	t.Helper()
	var pkts []*rtp.Packet
	for r.Len() > 0 {
		ch, pkt, err := ReadInterleaved(r)
		require.NoError(t, err)
		require.Equal(t, uint8(2), ch)
		pkts = append(pkts, pkt)
	}
	return pkts
}

func h264AccessUnits(t *testing.T) (key, skip []byte) {
	t.Helper()

	seq, err := h264.BuildSequenceHeader(h264.SequenceParameters{
		Profile:         h264.ProfileBaseline,
		Level:           h264.Level3,
		MaxNumRefFrames: 1,
		WidthInMbs:      22,
		HeightInMbs:     18,
	})
	require.NoError(t, err)
	pic, err := h264.BuildPictureHeader(h264.PictureParameters{})
	require.NoError(t, err)
	slice, err := h264.BuildSliceHeader(h264.SliceParameters{FrameType: h264.FrameP, FrameNumber: 1, MBSkipRun: 396})
	require.NoError(t, err)

	key, err = h264.AssembleAccessUnit(codec.TokenValues{}, seq, pic, slice)
	require.NoError(t, err)
	skip, err = h264.AssembleAccessUnit(codec.TokenValues{}, slice)
	require.NoError(t, err)
	return key, skip
}

func TestMuxerH264(t *testing.T) {
	t.Parallel()

	key, skip := h264AccessUnits(t)
	nalus, _ := nal.SplitNALUs(key)
	require.Len(t, nalus, 3)

	var out bytes.Buffer
	m, err := NewMuxer(&out, sdp.Media{Type: hostheader.H264}, 2, 0)
	require.NoError(t, err)
	require.NoError(t, m.WriteAccessUnit(key, frameDuration))
	require.NoError(t, m.WriteAccessUnit(skip, frameDuration))

	pkts := readAll(t, &out)
	require.Len(t, pkts, 3)

	// SPS and PPS ride in a STAP-A ahead of the slice.
	stapA := pkts[0].Payload
	require.Equal(t, byte(24), stapA[0]&0x1f)
	require.True(t, bytes.Contains(stapA, nalus[0]))
	require.True(t, bytes.Contains(stapA, nalus[1]))
	require.Equal(t, nalus[2], pkts[1].Payload)
	require.Equal(t, nalus[2], pkts[2].Payload)

	require.False(t, pkts[0].Marker)
	require.True(t, pkts[1].Marker)
	require.True(t, pkts[2].Marker)

	for _, p := range pkts {
		require.Equal(t, uint8(96), p.PayloadType)
		require.Equal(t, pkts[0].SSRC, p.SSRC)
	}
	require.Equal(t, pkts[0].SequenceNumber+1, pkts[1].SequenceNumber)
	require.Equal(t, pkts[1].SequenceNumber+1, pkts[2].SequenceNumber)
	require.Equal(t, pkts[0].Timestamp, pkts[1].Timestamp)
	require.Equal(t, pkts[1].Timestamp+3000, pkts[2].Timestamp)
}

func TestMuxerMPEG4Fragments(t *testing.T) {
	t.Parallel()

	vol, err := mpeg4.BuildSequenceHeader(mpeg4.SequenceParameters{
		Profile:           mpeg4.ProfileSimple,
		ProfileAndLevel:   3,
		VOPTimeResolution: 30,
		Width:             176,
		Height:            144,
	})
	require.NoError(t, err)
	vop, err := mpeg4.BuildVOPHeader(mpeg4.VOPParameters{CodingType: mpeg4.CodingP, TimeIncrement: 5, VOPTimeResolution: 30})
	require.NoError(t, err)

	var au []byte
	for _, s := range []*codec.ElementStream{vol, vop} {
		b, err := codec.AssembleStream(s, codec.TokenValues{})
		require.NoError(t, err)
		au = append(au, b...)
	}

	var out bytes.Buffer
	m, err := NewMuxer(&out, sdp.Media{Type: hostheader.MPEG4, PayloadType: 97}, 2, rtpHeaderSize+8)
	require.NoError(t, err)
	require.NoError(t, m.WriteAccessUnit(au, frameDuration))

	pkts := readAll(t, &out)
	require.Len(t, pkts, (len(au)+7)/8)

	var joined []byte
	for i, p := range pkts {
		require.LessOrEqual(t, len(p.Payload), 8)
		require.Equal(t, i == len(pkts)-1, p.Marker)
		require.Equal(t, uint8(97), p.PayloadType)
		joined = append(joined, p.Payload...)
	}
	require.Equal(t, au, joined)
}

func TestMuxerH263(t *testing.T) {
	t.Parallel()

	s, err := h263.BuildPictureHeader(h263.PictureParameters{
		TemporalRef:  0x1a5,
		CodingType:   h263.CodingP,
		SourceFormat: h263.FormatQCIF,
		FrameRate:    15,
	})
	require.NoError(t, err)
	au, err := codec.AssembleStream(s, codec.TokenValues{FrameQScale: 31})
	require.NoError(t, err)

	var out bytes.Buffer
	m, err := NewMuxer(&out, sdp.Media{Type: hostheader.H263}, 2, 0)
	require.NoError(t, err)
	require.NoError(t, m.WriteAccessUnit(au, frameDuration))

	pkts := readAll(t, &out)
	require.Len(t, pkts, 1)
	require.Equal(t, []byte{0x04, 0x00, 0x82, 0x96, 0x0a, 0x1f, 0x00}, pkts[0].Payload)
	require.True(t, pkts[0].Marker)
}

func TestNewMuxerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		media sdp.Media
		mtu   int
	}{
		{name: "jpeg", media: sdp.Media{Type: hostheader.JPEG}},
		{name: "unknown codec", media: sdp.Media{}},
		{name: "mtu below header", media: sdp.Media{Type: hostheader.H264}, mtu: rtpHeaderSize},
		{name: "mtu above frame", media: sdp.Media{Type: hostheader.H264}, mtu: maxInterleavedSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewMuxer(&bytes.Buffer{}, tt.media, 0, tt.mtu)
			var pv utils.PreconditionViolatedError
			require.True(t, errors.As(err, &pv), "%v", err)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestMuxerWriteError(t *testing.T) {
	t.Parallel()

	_, skip := h264AccessUnits(t)
	m, err := NewMuxer(failingWriter{}, sdp.Media{Type: hostheader.H264}, 0, 0)
	require.NoError(t, err)
	require.ErrorContains(t, m.WriteAccessUnit(skip, frameDuration), "closed")
}
