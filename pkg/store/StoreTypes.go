package store


/*
	Store
		the two durable artifacts of a replica, the user directory and the document directory, each in its
		own bbolt bucket inside one file under the replica data directory

		the file is opened per operation and closed right after, so recovery can wipe the data directory
		without a lingering file lock
*/

type Store struct {
	DBFile string
}

const (
	NAME = "Store"
	FileName = "replica.db"
	UserBucket = "users"
	DocumentBucket = "documents"
)
