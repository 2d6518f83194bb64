package system

import "strconv"


func (status PeerStatus) String() string {
	switch status {
		case Empty:
			return "EMPTY"
		case Busy:
			return "BUSY"
		case Dead:
			return "DEAD"
		default:
			return "UNKNOWN"
	}
}

func ParseStatus(raw string) PeerStatus {
	switch raw {
		case "EMPTY":
			return Empty
		case "BUSY":
			return Busy
		case "DEAD":
			return Dead
		default:
			return Unknown
	}
}

/*
	Server Name:
		replicas are named by the port they are bound to, ie. Server1300
*/

func ServerName(port int) string {
	return "Server" + strconv.Itoa(port)
}
