package chataddrtests

import "testing"

import "github.com/sirgallo/rdoc/pkg/chataddr"


func TestFormatRange(t *testing.T) {
	first := chataddr.Format(chataddr.FirstAddress)
	last := chataddr.Format(chataddr.LastAddress)

	t.Logf("actual first: %s, last: %s\n", first, last)
	if first != "239.0.0.1" { t.Errorf("first actual(%s), expected(239.0.0.1)\n", first) }
	if last != "239.255.255.254" { t.Errorf("last actual(%s), expected(239.255.255.254)\n", last) }

	parsed, parseErr := chataddr.Parse("239.0.0.1")
	if parseErr != nil || parsed != chataddr.FirstAddress { t.Errorf("parse actual(%d, %v), expected(%d)\n", parsed, parseErr, chataddr.FirstAddress) }

	_, rangeErr := chataddr.Parse("10.0.0.1")
	if rangeErr == nil { t.Errorf("non multicast address should be rejected\n") }
}

func TestAllocationReuseAndRelease(t *testing.T) {
	table := chataddr.NewTable()

	addr1, _ := table.NextAvailable("doc1")
	if addr1 != chataddr.FirstAddress { t.Errorf("first allocation actual(%d), expected(%d)\n", addr1, chataddr.FirstAddress) }

	peek, _ := table.NextAvailable("doc1")
	if peek != addr1 { t.Errorf("unassigned peek should be stable actual(%d), expected(%d)\n", peek, addr1) }

	table.Assign("doc1", addr1)

	again, _ := table.NextAvailable("doc1")
	if again != addr1 { t.Errorf("doc being edited should reuse its address actual(%d), expected(%d)\n", again, addr1) }

	addr2, _ := table.NextAvailable("doc2")
	table.Assign("doc2", addr2)
	if addr2 != addr1 + 1 { t.Errorf("second document actual(%d), expected(%d)\n", addr2, addr1 + 1) }

	table.Release("doc1")

	addr3, _ := table.NextAvailable("doc3")
	t.Logf("actual reused: %s, expected: %s\n", chataddr.Format(addr3), chataddr.Format(addr1))
	if addr3 != addr1 { t.Errorf("released address should be reused actual(%d), expected(%d)\n", addr3, addr1) }
}
