package utils_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pathext/internal/utils"
)

func TestFlushingWriterFlushesAfterEachWrite(testInstance *testing.T) {
	var destination bytes.Buffer
	bufferedWriter := bufio.NewWriterSize(&destination, 4096)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := flushingWriter.Write([]byte("a/b.txt\n"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 8, bytesWritten)
	require.Equal(testInstance, "a/b.txt\n", destination.String())

	require.Same(testInstance, flushingWriter, utils.NewFlushingWriter(flushingWriter))
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}
