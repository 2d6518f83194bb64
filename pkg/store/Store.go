package store

import "os"
import "path/filepath"
import "time"

import bolt "go.etcd.io/bbolt"

import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/userdb"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Replica Store


var Log = clog.NewCustomLog(NAME)


func NewStore(dataDir string) *Store {
	return &Store{
		DBFile: filepath.Join(dataDir, FileName),
	}
}

func (s *Store) Exists() bool {
	_, statErr := os.Stat(s.DBFile)
	return statErr == nil
}

/*
	Save:
		1.) open the db, creating the data directory if needed
		2.) drop and recreate both buckets so removed entries do not survive
		3.) write one entry per user keyed by username, one per document keyed by name
*/

func (s *Store) Save(users []userdb.User, documents []docdb.DocumentRecord) error {
	mkdirErr := os.MkdirAll(filepath.Dir(s.DBFile), 0755)
	if mkdirErr != nil { return mkdirErr }

	db, openErr := s.open()
	if openErr != nil { return openErr }
	defer db.Close()

	transaction := func(tx *bolt.Tx) error {
		userBucket, userErr := recreateBucket(tx, UserBucket)
		if userErr != nil { return userErr }

		for _, user := range users {
			value, encErr := utils.EncodeStructToBytes[userdb.User](user)
			if encErr != nil { return encErr }

			putErr := userBucket.Put([]byte(user.Username), value)
			if putErr != nil { return putErr }
		}

		docBucket, docErr := recreateBucket(tx, DocumentBucket)
		if docErr != nil { return docErr }

		for _, doc := range documents {
			value, encErr := utils.EncodeStructToBytes[docdb.DocumentRecord](doc)
			if encErr != nil { return encErr }

			putErr := docBucket.Put([]byte(doc.Name), value)
			if putErr != nil { return putErr }
		}

		return nil
	}

	updateErr := db.Update(transaction)
	if updateErr != nil { return updateErr }

	Log.Info("saved", len(users), "users and", len(documents), "documents to", s.DBFile)
	return nil
}

/*
	Load:
		a missing file means a fresh replica, so both directories start empty
*/

func (s *Store) Load() ([]userdb.User, []docdb.DocumentRecord, error) {
	if ! s.Exists() { return []userdb.User{}, []docdb.DocumentRecord{}, nil }

	db, openErr := s.open()
	if openErr != nil { return nil, nil, openErr }
	defer db.Close()

	users := []userdb.User{}
	documents := []docdb.DocumentRecord{}

	transaction := func(tx *bolt.Tx) error {
		userBucket := tx.Bucket([]byte(UserBucket))
		if userBucket != nil {
			iterErr := userBucket.ForEach(func(key, value []byte) error {
				user, decErr := utils.DecodeBytesToStruct[userdb.User](value)
				if decErr != nil { return decErr }

				users = append(users, *user)
				return nil
			})

			if iterErr != nil { return iterErr }
		}

		docBucket := tx.Bucket([]byte(DocumentBucket))
		if docBucket != nil {
			iterErr := docBucket.ForEach(func(key, value []byte) error {
				doc, decErr := utils.DecodeBytesToStruct[docdb.DocumentRecord](value)
				if decErr != nil { return decErr }

				documents = append(documents, *doc)
				return nil
			})

			if iterErr != nil { return iterErr }
		}

		return nil
	}

	viewErr := db.View(transaction)
	if viewErr != nil { return nil, nil, viewErr }

	Log.Info("loaded", len(users), "users and", len(documents), "documents from", s.DBFile)
	return users, documents, nil
}

func (s *Store) open() (*bolt.DB, error) {
	return bolt.Open(s.DBFile, 0600, &bolt.Options{ Timeout: 1 * time.Second })
}

func recreateBucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	bucketName := []byte(name)
	if tx.Bucket(bucketName) != nil {
		deleteErr := tx.DeleteBucket(bucketName)
		if deleteErr != nil { return nil, deleteErr }
	}

	return tx.CreateBucket(bucketName)
}
