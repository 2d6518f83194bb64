package utils


func GetZero [T any]() T {
	var result T
	return result
}
