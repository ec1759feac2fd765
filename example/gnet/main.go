package main

import (
	"flag"

	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/logdw"
	"github.com/lixenwraith/logdw/compat"
)

// echoServer logs every connection through the collector transport
type echoServer struct {
	gnet.BuiltinEventEngine
	t *logdw.Transport
}

func (es *echoServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	es.t.Print(logdw.PriorityDebug, "echo", "open %s", c.RemoteAddr())
	return nil, gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	socket := flag.String("socket", logdw.DefaultSocketPath, "Collector socket path")
	addr := flag.String("addr", "tcp://127.0.0.1:9000", "Listen address")
	flag.Parse()

	t, err := logdw.NewBuilder().
		SocketPath(*socket).
		MinPriority("d").
		Build()
	if err != nil {
		panic(err)
	}
	defer t.Close()

	gnetAdapter := compat.NewGnetAdapter(t, compat.WithGnetTag("echo-gnet"))

	err = gnet.Run(
		&echoServer{t: t},
		*addr,
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
