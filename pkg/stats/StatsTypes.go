package stats


type Stats struct {
	Path string
	AvailableDiskSpaceInBytes int64
	TotalDiskSpaceInBytes int64
	UsedDiskSpaceInBytes int64
	Timestamp string
}

const NAME = "Stats"

// headroom kept free on the data filesystem when accepting a recovery payload
const ReserveBytes = 1 << 20
