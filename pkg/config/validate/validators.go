package validate

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "network.bootnodes[0]"
	Message string // e.g., "invalid multiaddr"
	Hint    string // e.g., "expected /ip{4,6}/.../tcp/<port>/p2p/<peerID>"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateDirWritable validates that a directory exists and is writable.
func ValidateDirWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory")
	}

	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte(""), 0644); err != nil {
		return fmt.Errorf("directory not writable: %v", err)
	}
	os.Remove(testFile)

	return nil
}

// ValidateHostPort validates a host:port address format.
func ValidateHostPort(hostPort string) error {
	host, port, err := net.SplitHostPort(hostPort)
	if err != nil {
		return fmt.Errorf("expected format host:port")
	}

	if host == "" {
		return fmt.Errorf("host must not be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port must be a number; got %q", port)
	}
	return ValidatePort(portNum)
}

// ValidatePort validates that a port number is in the valid range.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535; got %d", port)
	}
	return nil
}

// ExtractTCPPort extracts the TCP port from a multiaddr string.
func ExtractTCPPort(multiaddrStr string) string {
	parts := strings.Split(multiaddrStr, "/")
	for i := 0; i < len(parts); i++ {
		if parts[i] == "tcp" {
			if i+1 < len(parts) {
				return parts[i+1]
			}
			break
		}
	}
	return ""
}

// ValidateListenMultiaddr checks that addr is a multiaddr a TCP listener can bind.
func ValidateListenMultiaddr(addr string) (hint string, err error) {
	ma, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		return "expected /ip{4,6}/<addr>/tcp/<port>", fmt.Errorf("invalid multiaddr: %v", err)
	}

	netAddr, err := manet.ToNetAddr(ma)
	if err != nil {
		return "ensure multiaddr contains /tcp/<port>", fmt.Errorf("cannot convert multiaddr to network address: %v", err)
	}

	tcpAddr, ok := netAddr.(*net.TCPAddr)
	if !ok {
		return "only TCP listeners are supported", fmt.Errorf("not a TCP address: %s", netAddr.Network())
	}
	if err := ValidatePort(tcpAddr.Port); err != nil {
		return "use a fixed port, not 0", err
	}
	return "", nil
}

// ValidatePeerMultiaddr checks that addr is a dialable multiaddr ending in /p2p/<peerID>.
func ValidatePeerMultiaddr(addr string) (hint string, err error) {
	const want = "expected /ip{4,6}/.../tcp/<port>/p2p/<peerID>"

	ma, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		return want, fmt.Errorf("invalid multiaddr: %v", err)
	}

	if !strings.Contains(addr, "/p2p/") {
		return want, fmt.Errorf("missing /p2p/<peerID> component")
	}
	if _, err := peer.AddrInfoFromP2pAddr(ma); err != nil {
		return want, fmt.Errorf("invalid peer id: %v", err)
	}

	tcpPortStr := ExtractTCPPort(addr)
	if tcpPortStr == "" {
		return want, fmt.Errorf("missing /tcp/<port> component")
	}
	tcpPort, err := strconv.Atoi(tcpPortStr)
	if err != nil {
		return want, fmt.Errorf("invalid TCP port %s", tcpPortStr)
	}
	if err := ValidatePort(tcpPort); err != nil {
		return want, err
	}
	return "", nil
}

// ValidateHexHash validates a 0x-prefixed hex string of exactly size bytes.
func ValidateHexHash(s string, size int) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("missing 0x prefix")
	}
	body := s[2:]
	if len(body) != size*2 {
		return fmt.Errorf("must be %d hex characters (%d bytes), got %d", size*2, size, len(body))
	}
	if _, err := hex.DecodeString(body); err != nil {
		return fmt.Errorf("must be valid hexadecimal: %w", err)
	}
	return nil
}
