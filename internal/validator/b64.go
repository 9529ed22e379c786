package validator

import (
	"encoding/base64"
)

// ensure the data length is less than the maximum base64 length for a given length without decoding the base64
func validateBase64Len(dataLen int, length int) bool {
	return dataLen <= base64.StdEncoding.EncodedLen(length)
}

// ensures an encoded image is at least 100 bytes and below the 100kB the service accepts
func ValidateImageSize(dataLen int) bool {
	return dataLen >= base64.StdEncoding.EncodedLen(100) && validateBase64Len(dataLen, 1<<10*100)
}

// ensures encoded audio stays below the 1MB the service accepts
func ValidateAudioSize(dataLen int) bool {
	return validateBase64Len(dataLen, 1<<20)
}
