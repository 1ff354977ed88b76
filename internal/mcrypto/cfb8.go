package mcrypto

import "crypto/cipher"

// cfb8 implements AES-CFB8: 8-bit-feedback CFB, the variant Minecraft's
// protocol negotiates after the login encryption request. Go's stdlib
// cipher.NewCFBEncrypter/NewCFBDecrypter only implement full-block CFB,
// so this shift-register form is hand-rolled over cipher.Block.
type cfb8 struct {
	block   cipher.Block
	shift   []byte // shift register, len == block.BlockSize()
	scratch []byte
	decrypt bool
}

// NewCFB8Encrypter returns a cipher.Stream that encrypts with AES-CFB8
// using iv as the initial shift register contents.
func NewCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter returns a cipher.Stream that decrypts with AES-CFB8
// using iv as the initial shift register contents.
func NewCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) *cfb8 {
	size := block.BlockSize()
	shift := make([]byte, size)
	copy(shift, iv)
	return &cfb8{
		block:   block,
		shift:   shift,
		scratch: make([]byte, size),
		decrypt: decrypt,
	}
}

func (x *cfb8) XORKeyStream(dst, src []byte) {
	for i := 0; i < len(src); i++ {
		x.block.Encrypt(x.scratch, x.shift)
		c := src[i]
		var feedback byte
		var out byte
		if x.decrypt {
			out = c ^ x.scratch[0]
			feedback = c
		} else {
			out = c ^ x.scratch[0]
			feedback = out
		}
		copy(x.shift, x.shift[1:])
		x.shift[len(x.shift)-1] = feedback
		dst[i] = out
	}
}
