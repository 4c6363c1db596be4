package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// Crypto 加密工具，用于加密存储敏感数据（软件许可证密钥等）
type Crypto struct {
	aesKey []byte // AES-256加密密钥（32字节）
}

// NewCrypto 创建加密工具实例
// jwtSecret: JWT签名密钥（建议64字节或更长）
// AES-256加密密钥会自动从此密钥提取前32字节
func NewCrypto(jwtSecret string) *Crypto {
	jwtKey := []byte(jwtSecret)
	if len(jwtKey) == 0 {
		// 如果没有配置，使用默认值（仅用于开发环境）
		jwtKey = []byte("k3P0vQ9wLxTzR5mYcJ2hN8bF1dG6sA4eUiOpHjKlZnXvCqWbM7tE0yRaSgDfuI3+")
	}

	// 从jwt_secret提取32字节用于AES-256加密
	aesKey := extract32BytesForAES(jwtKey)

	return &Crypto{
		aesKey: aesKey,
	}
}

// extract32BytesForAES 从JWT密钥提取32字节用于AES-256加密
// 策略：
//   - 如果密钥 >= 32字节：取前32字节
//   - 如果密钥 < 32字节：使用SHA256哈希转换为32字节
func extract32BytesForAES(key []byte) []byte {
	if len(key) >= 32 {
		return key[:32]
	}

	hash := sha256.Sum256(key)
	return hash[:]
}

// Encrypt 加密数据
func (c *Crypto) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.aesKey)
	if err != nil {
		return "", err
	}

	// 使用GCM模式
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	// 生成nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// 加密
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	// Base64编码
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt 解密数据
func (c *Crypto) Decrypt(encryptedText string) (string, error) {
	// Base64解码
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedText)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(c.aesKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, data := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
