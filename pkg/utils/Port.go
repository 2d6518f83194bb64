package utils

import "net"
import "strconv"


/*
	Normalize Port:
		turn a port number into the ":<port>" form expected by net.Listen
*/

func NormalizePort(port int) string {
	return ":" + strconv.Itoa(port)
}

func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
