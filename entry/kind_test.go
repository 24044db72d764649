package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindByCLIName(t *testing.T) {
	k, ok := KindByCLIName("remote-desktop")
	assert.True(t, ok)
	assert.Equal(t, KindRemoteDesktop, k)

	_, ok = KindByCLIName("nonsense")
	assert.False(t, ok)
}

func TestKindByXMLType(t *testing.T) {
	k, ok := KindByXMLType("creditcard")
	assert.True(t, ok)
	assert.Equal(t, KindCreditCard, k)
}

func TestPropertySchema(t *testing.T) {
	p, ok := PropertyByCLIName(KindWebsite, "url")
	assert.True(t, ok)
	assert.Equal(t, "generic-url", p.FieldID)

	_, ok = PropertyByCLIName(KindWebsite, "hostname")
	assert.False(t, ok)
}

func TestFieldIDsFor(t *testing.T) {
	ids := FieldIDsFor(KindPhone)
	assert.Equal(t, []string{"phone-phonenumber", "generic-pin"}, ids)
}

func TestAllAccountKindsCount(t *testing.T) {
	assert.Len(t, AllAccountKinds(), 12)
}
