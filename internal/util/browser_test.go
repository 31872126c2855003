package util

import (
	"net"
	"testing"
)

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	busy := ln.Addr().(*net.TCPAddr).Port

	got, err := FindAvailablePort(busy, 20)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == busy || got < busy || got >= busy+20 {
		t.Fatalf("got port %d, busy %d", got, busy)
	}
}

func TestFindAvailablePort_AllBusy(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	busy := ln.Addr().(*net.TCPAddr).Port

	if _, err := FindAvailablePort(busy, 1); err == nil {
		t.Fatalf("expected error when the only candidate is busy")
	}
}
