package stats

import "fmt"

import "github.com/sirgallo/rdoc/pkg/utils"


func EncodeStatObjectToBytes(statObj Stats) ([]byte, error) {
	return utils.EncodeStructToBytes[Stats](statObj)
}

func DecodeBytesToStatObject(statAsBytes []byte) (*Stats, error) {
	return utils.DecodeBytesToStruct[Stats](statAsBytes)
}

func (s Stats) String() string {
	return fmt.Sprintf("%s: %d/%d bytes available", s.Path, s.AvailableDiskSpaceInBytes, s.TotalDiskSpaceInBytes)
}
