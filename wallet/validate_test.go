package wallet

import (
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func TestValidateTerraAddress(t *testing.T) {
	assert.NoError(t, ValidateTerraAddress("terra1srw9p49fa46fw6asp0ttrr3cj8evmj3098jdej"))
	assert.Error(t, ValidateTerraAddress(""))
	assert.Error(t, ValidateTerraAddress("terra1srw9p49fa46fw6asp0ttrr3cj8evmj3098jde"))
	assert.Error(t, ValidateTerraAddress("cosmos1srw9p49fa46fw6asp0ttrr3cj8evmj3098jdej"))
}

func TestValidateEthereumAddress(t *testing.T) {
	assert.NoError(t, ValidateEthereumAddress("0x5b73CDf935491E1E48027A75b909Eaeb8aEf5c3c"))
	assert.Error(t, ValidateEthereumAddress("5b73CDf935491E1E48027A75b909Eaeb8aEf5c3c"))
	assert.Error(t, ValidateEthereumAddress("0x5b73CDf935491E1E48027A75b909Eaeb8aEf5c3"))
	assert.Error(t, ValidateEthereumAddress("0x5b73CDf935491E1E48027A75b909Eaeb8aEf5cZZ"))
	assert.Error(t, ValidateEthereumAddress("terra1srw9p49fa46fw6asp0ttrr3cj8evmj3098jdej"))
}

func TestValidateMemo(t *testing.T) {
	assert.NoError(t, ValidateMemo(""))
	assert.NoError(t, ValidateMemo("rent for march"))
	assert.Error(t, ValidateMemo("<script>"))
	assert.Error(t, ValidateMemo("a>b"))
	assert.NoError(t, ValidateMemo(strings.Repeat("a", 256)))
	assert.Error(t, ValidateMemo(strings.Repeat("a", 257)))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("1000000"))
	assert.Error(t, ValidateAmount("0"))
	assert.Error(t, ValidateAmount("-1"))
	assert.Error(t, ValidateAmount("1.5"))
	assert.Error(t, ValidateAmount(""))
}

func TestValidateExecuteMsg(t *testing.T) {
	assert.NoError(t, ValidateExecuteMsg(`{"claim":{}}`))
	assert.Error(t, ValidateExecuteMsg(`[1,2]`))
	assert.Error(t, ValidateExecuteMsg(`not json`))
}
