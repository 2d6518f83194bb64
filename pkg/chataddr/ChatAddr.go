package chataddr


//=========================================== Chat Address Allocator


func NewTable() *Table {
	return &Table{
		addresses: make(map[string]uint32),
	}
}

func (t *Table) Lookup(docName string) (uint32, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	addr, ok := t.addresses[docName]
	return addr, ok
}

/*
	Next Available:
		1.) a document that is already being edited keeps its address
		2.) otherwise return the lowest address in range not held by any document

	nothing is reserved here, the address only becomes taken when the EDIT transaction carrying it is applied
*/

func (t *Table) NextAvailable(docName string) (uint32, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	existing, ok := t.addresses[docName]
	if ok { return existing, nil }

	inUse := make(map[uint32]bool, len(t.addresses))
	for _, addr := range t.addresses { inUse[addr] = true }

	for addr := FirstAddress; addr <= LastAddress; addr++ {
		if ! inUse[addr] { return addr, nil }
	}

	return 0, ErrExhausted
}

func (t *Table) Assign(docName string, addr uint32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.addresses[docName] = addr
}

func (t *Table) Release(docName string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	_, ok := t.addresses[docName]
	delete(t.addresses, docName)

	return ok
}

func (t *Table) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return len(t.addresses)
}

func (t *Table) Snapshot() map[string]uint32 {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	snapshot := make(map[string]uint32, len(t.addresses))
	for doc, addr := range t.addresses { snapshot[doc] = addr }

	return snapshot
}

func (t *Table) Restore(addresses map[string]uint32) {
	restored := make(map[string]uint32, len(addresses))
	for doc, addr := range addresses { restored[doc] = addr }

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.addresses = restored
}
