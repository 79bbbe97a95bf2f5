package vendorsum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"Purchases"`, vendorsum.QuoteIdent("Purchases"))
	assert.Equal(t, `"weird""name"`, vendorsum.QuoteIdent(`weird"name`))
	assert.Equal(t, `""`, vendorsum.QuoteIdent(""))
}

func TestIfExistsString(t *testing.T) {
	assert.Equal(t, "fail", vendorsum.IfExistsFail.String())
	assert.Equal(t, "replace", vendorsum.IfExistsReplace.String())
}
