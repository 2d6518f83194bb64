package chataddr

import "encoding/binary"
import "fmt"
import "net"


func Format(addr uint32) string {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, addr)

	return ip.String()
}

func Parse(raw string) (uint32, error) {
	ip := net.ParseIP(raw).To4()
	if ip == nil { return 0, fmt.Errorf("not an ipv4 address: %q", raw) }

	addr := binary.BigEndian.Uint32(ip)
	if ! InRange(addr) { return 0, fmt.Errorf("address out of multicast range: %s", raw) }

	return addr, nil
}

func InRange(addr uint32) bool {
	return addr >= FirstAddress && addr <= LastAddress
}
