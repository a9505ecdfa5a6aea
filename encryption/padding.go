package encryption

import "bytes"

// pkcs7Pad returns a copy of src with PKCS#7 padding to a multiple of
// blockSize.  A full block of padding is added when src is already aligned.
func pkcs7Pad(src []byte, blockSize int) []byte {
	padding := blockSize - (len(src) % blockSize)
	out := make([]byte, len(src), len(src)+padding)
	copy(out, src)
	return append(out, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad strips PKCS#7 padding.  It only runs after the HMAC has been
// verified, so every failure collapses into ErrAuthentication.
func pkcs7Unpad(src []byte, blockSize int) ([]byte, error) {
	length := len(src)
	if length == 0 || length%blockSize != 0 {
		return nil, ErrAuthentication
	}
	padding := int(src[length-1])
	if padding == 0 || padding > blockSize {
		return nil, ErrAuthentication
	}
	for i := length - padding; i < length; i++ {
		if src[i] != byte(padding) {
			return nil, ErrAuthentication
		}
	}
	return src[:length-padding], nil
}
