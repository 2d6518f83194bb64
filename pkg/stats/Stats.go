package stats

import "os"
import "path/filepath"
import "syscall"
import "time"

import "github.com/sirgallo/rdoc/pkg/logger"


var Log = clog.NewCustomLog(NAME)


/*
	Calculate Stats:
		1.) walk up from the path until an existing directory is found (the data dir may not exist yet on a fresh replica)
		2.) statfs the directory to get block counts for the filesystem it lives on
		3.) convert block counts to bytes
*/

func CalculateStats(path string) (*Stats, error) {
	dir, resolveErr := nearestExistingDir(path)
	if resolveErr != nil { return nil, resolveErr }

	var stat syscall.Statfs_t

	statErr := syscall.Statfs(dir, &stat)
	if statErr != nil {
		Log.Error("error getting disk space for", dir, ":", statErr.Error())
		return nil, statErr
	}

	blockSize := uint64(stat.Bsize)

	return &Stats{
		Path: dir,
		AvailableDiskSpaceInBytes: int64(stat.Bavail * blockSize),
		TotalDiskSpaceInBytes: int64(stat.Blocks * blockSize),
		UsedDiskSpaceInBytes: int64((stat.Blocks - stat.Bfree) * blockSize),
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func CalculateCurrentStats() (*Stats, error) {
	path, dirErr := os.Getwd()
	if dirErr != nil { return nil, dirErr }

	return CalculateStats(path)
}

/*
	Has Capacity For:
		check that the filesystem holding path can take required bytes, leaving the reserve untouched
*/

func HasCapacityFor(path string, required int64) (bool, *Stats, error) {
	stats, statsErr := CalculateStats(path)
	if statsErr != nil { return false, nil, statsErr }

	return stats.AvailableDiskSpaceInBytes - ReserveBytes >= required, stats, nil
}

func nearestExistingDir(path string) (string, error) {
	abs, absErr := filepath.Abs(path)
	if absErr != nil { return "", absErr }

	for {
		info, statErr := os.Stat(abs)
		if statErr == nil && info.IsDir() { return abs, nil }

		parent := filepath.Dir(abs)
		if parent == abs { return abs, nil }
		abs = parent
	}
}
