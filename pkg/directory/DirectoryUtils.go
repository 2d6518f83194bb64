package directory

import "fmt"
import "strconv"
import "strings"


/*
	Parse Ports:
		"1300,1400,1500" --> [1300 1400 1500], duplicates and blanks are rejected
*/

func ParsePorts(raw string) ([]int, error) {
	ports := []int{}
	seen := make(map[int]bool)

	for _, field := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(field)
		if trimmed == "" { return nil, fmt.Errorf("empty port in %q", raw) }

		port, convErr := strconv.Atoi(trimmed)
		if convErr != nil { return nil, convErr }
		if port <= 0 || port > 65535 { return nil, fmt.Errorf("port out of range: %d", port) }
		if seen[port] { return nil, fmt.Errorf("duplicate port: %d", port) }

		seen[port] = true
		ports = append(ports, port)
	}

	return ports, nil
}
