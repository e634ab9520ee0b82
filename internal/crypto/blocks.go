package crypto

// processBlocks applies op to input in chunks of at most blockSize bytes
// and concatenates the outputs. RSA can only process inputs up to the
// cipher's maximum block size, so arbitrary-length payloads are split
// across multiple operations. The current protocol wraps a single
// 32-byte key, which fits in one block, but the routine stays generic
// for larger wrapped payloads.
func processBlocks(input []byte, blockSize int, op func([]byte) ([]byte, error)) ([]byte, error) {
	if blockSize <= 0 {
		return nil, ErrInvalidPublicKey
	}
	if len(input) == 0 {
		return op(input)
	}

	var out []byte
	for offset := 0; offset < len(input); offset += blockSize {
		end := offset + blockSize
		if end > len(input) {
			end = len(input)
		}
		block, err := op(input[offset:end])
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}
