package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrPhotoNotFound is an error thrown when no stored photo matches
var ErrPhotoNotFound = errors.New("photo not found")

// ErrMissingChecksum is an error thrown when the client did not send a checksum
var ErrMissingChecksum = errors.New("checksum not provided")

// ErrInvalidFilename is an error thrown when the declared filename cannot be used as a file name
var ErrInvalidFilename = errors.New("invalid filename")

// ErrUnsupportedMediaType is an error thrown when the resolved mime type is not allowed
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ErrIntegrityMismatch is an error thrown when the computed checksum differs from the client one
var ErrIntegrityMismatch = errors.New("data corrupted: checksum mismatch, upload the file again")

// ErrStorageFault is an error thrown when the storage backend fails
var ErrStorageFault = errors.New("storage fault")
