// Package publish tags files with puid identifiers and stores them in S3.
//
// Each file is uploaded under <key prefix><id><ext>, where the ID is minted
// from the configured prefix. The original file name is kept in the
// object's source-name metadata.
package publish
