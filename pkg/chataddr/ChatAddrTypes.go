package chataddr

import "errors"
import "sync"


/*
	Chat Address Table
		document name --> multicast group address, as a uint32 in the administratively scoped 239.0.0.0/8 block
*/

type Table struct {
	mutex sync.Mutex
	addresses map[string]uint32
}

const (
	FirstAddress uint32 = 4009754625 // 239.0.0.1
	LastAddress uint32 = 4026531838 // 239.255.255.254
)

const NAME = "ChatAddr"

var ErrExhausted = errors.New("no multicast address available")
