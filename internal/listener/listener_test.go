package listener

import (
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/risusan87/mcpyserver/internal/conn"
	"github.com/risusan87/mcpyserver/internal/packet"
)

func TestListenServeShutdown(t *testing.T) {
	logger, _ := test.NewNullLogger()
	entry := logrus.NewEntry(logger)

	accepted := make(chan struct{}, 1)
	factory := func(id int64, nc net.Conn) *conn.Connection {
		accepted <- struct{}{}
		return conn.New(id, nc, false, -1, packet.ServerMeta{}, "", nil, entry)
	}

	ln, err := Listen("127.0.0.1:0", factory, entry)
	require.NoError(t, err)

	go ln.Serve()

	dialConn, err := net.DialTimeout("tcp", ln.ln.Addr().String(), time.Second)
	require.NoError(t, err)
	defer dialConn.Close()

	select {
	case <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was never accepted")
	}

	ln.Shutdown()

	done := make(chan struct{})
	go func() {
		ln.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("listener never shut down")
	}
}
