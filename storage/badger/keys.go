package badger

import (
	"fmt"
)

// Key prefixes for different data types
const (
	codeRecordPrefix = "codrec"
	datasetInfoKey   = "dataset:info"
)

// makeCodeKey generates a key for a catalog code by its identifier.
func makeCodeKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", codeRecordPrefix, id))
}

// codeKeyPrefix returns the iteration prefix for all catalog codes.
func codeKeyPrefix() []byte {
	return []byte(codeRecordPrefix + ":")
}

// makeDatasetInfoKey generates the key for the dataset metadata record.
func makeDatasetInfoKey() []byte {
	return []byte(datasetInfoKey)
}
