package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type named struct{}

func (named) String() string { return "h264.SliceHeaderBuilder" }

type plain struct{}

func TestObjToString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NIL", objToString(nil))
	require.Equal(t, "stream", objToString("stream"))
	require.Equal(t, "plain", objToString(plain{}))
	require.Equal(t, "plain", objToString(&plain{}))
	require.Equal(t, "h264.SliceHeaderBuil", objToString(named{}))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, logrus.TraceLevel, ParseLevel("trace"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	Init(logrus.WarnLevel)
	defer Init(logrus.InfoLevel)

	Debug(plain{}, "hidden")
	require.Zero(t, buf.Len())

	Warningf(plain{}, "element %d overflow", 16)
	require.Contains(t, buf.String(), "element 16 overflow")
	require.Contains(t, buf.String(), "plain")
}
