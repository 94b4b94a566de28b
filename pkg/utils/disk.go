package utils

import (
	"fmt"
)

// DiskInfo filesystem usage of a path
type DiskInfo struct {
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// CheckDiskSpace true when requiredBytes fit and at least minFreePercent (default 10) stays free afterwards
func CheckDiskSpace(path string, requiredBytes int64, minFreePercent float64) (bool, *DiskInfo, error) {
	if minFreePercent == 0 {
		minFreePercent = 10.0
	}

	info, err := GetDiskInfo(path)
	if err != nil {
		return false, nil, err
	}

	if int64(info.Free) < requiredBytes {
		return false, info, nil
	}

	remainingFree := int64(info.Free) - requiredBytes
	remainingPercent := float64(remainingFree) / float64(info.Total) * 100
	if remainingPercent < minFreePercent {
		return false, info, nil
	}

	return true, info, nil
}

// FormatBytes human readable size, 1536 -> "1.50 KB"
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

type DiskSpaceError struct {
	Required  int64
	Available uint64
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space: required %s, available %s",
		FormatBytes(uint64(e.Required)),
		FormatBytes(e.Available),
	)
}

func NewDiskSpaceError(required int64, available uint64) *DiskSpaceError {
	return &DiskSpaceError{Required: required, Available: available}
}
