package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestProcessBlocks_Chunking(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		blockSize int
		wantCalls int
	}{
		{"single block", []byte("abcd"), 8, 1},
		{"exact multiple", []byte("abcdefgh"), 4, 2},
		{"remainder", []byte("abcdefghi"), 4, 3},
		{"one byte blocks", []byte("xyz"), 1, 3},
		{"empty input", nil, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			var seen []byte
			out, err := processBlocks(tt.input, tt.blockSize, func(block []byte) ([]byte, error) {
				calls++
				if len(block) > tt.blockSize {
					t.Errorf("block length %d exceeds max %d", len(block), tt.blockSize)
				}
				seen = append(seen, block...)
				return block, nil
			})
			if err != nil {
				t.Fatalf("processBlocks() error = %v", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("op called %d times, want %d", calls, tt.wantCalls)
			}
			if !bytes.Equal(seen, tt.input) {
				t.Error("blocks did not cover input in order")
			}
			if !bytes.Equal(out, tt.input) {
				t.Error("identity op changed output")
			}
		})
	}
}

func TestProcessBlocks_FixedSizeOutput(t *testing.T) {
	// Each input block maps to a fixed-size output block, like RSA.
	out, err := processBlocks([]byte("abcdefghij"), 4, func(block []byte) ([]byte, error) {
		padded := make([]byte, 16)
		copy(padded, block)
		return padded, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 48 {
		t.Errorf("output length = %d, want 48", len(out))
	}
}

func TestProcessBlocks_OpError(t *testing.T) {
	opErr := errors.New("op failed")
	_, err := processBlocks([]byte("abcdefgh"), 4, func(block []byte) ([]byte, error) {
		if block[0] == 'e' {
			return nil, opErr
		}
		return block, nil
	})
	if !errors.Is(err, opErr) {
		t.Errorf("error = %v, want %v", err, opErr)
	}
}

func TestProcessBlocks_InvalidBlockSize(t *testing.T) {
	_, err := processBlocks([]byte("abc"), 0, func(block []byte) ([]byte, error) {
		return block, nil
	})
	if err == nil {
		t.Error("expected error for zero block size")
	}
}
