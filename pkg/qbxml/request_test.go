package qbxml

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/terms"
)

func TestEscapeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Net 30", "Net 30"},
		{"ampersand first", "A & B <C>", "A &amp; B &lt;C&gt;"},
		{"no double escape", "&amp;", "&amp;amp;"},
		{"quotes untouched", `Say "hi" 'now'`, `Say "hi" 'now'`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeName(tt.in))
		})
	}
}

func TestBuildBatchAdd(t *testing.T) {
	doc, err := BuildBatchAdd([]terms.Term{{Name: "Net 45", ID: 45}, {Name: "A & B <C>", ID: 7}})
	require.NoError(t, err)

	s := string(doc)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="utf-8"?>`+"\n"+`<?qbxml version="13.0"?>`+"\n<QBXML>"))
	assert.Contains(t, s, `<QBXMLMsgsRq onError="continueOnError">`)
	assert.Equal(t, 2, strings.Count(s, "<StandardTermsAddRq "))
	assert.Contains(t, s, `<StandardTermsAddRq requestID="1">`)
	assert.Contains(t, s, `<StandardTermsAddRq requestID="2">`)
	assert.Contains(t, s, "<Name>Net 45</Name>")
	assert.Contains(t, s, "<Name>A &amp; B &lt;C&gt;</Name>")
	assert.Equal(t, 2, strings.Count(s, "<StdDueDays>30</StdDueDays>"))
	assert.Contains(t, s, "<StdDiscountDays>45</StdDiscountDays>")
	assert.Contains(t, s, "<StdDiscountDays>7</StdDiscountDays>")
	assert.NotContains(t, s, "StandardTermsQueryRq")

	// Items keep the order of the input list.
	assert.Less(t, strings.Index(s, "Net 45"), strings.Index(s, "A &amp; B"))
}

func TestBuildBatchAddEmpty(t *testing.T) {
	doc, err := BuildBatchAdd(nil)
	require.NoError(t, err)

	s := string(doc)
	assert.Contains(t, s, `<QBXMLMsgsRq onError="continueOnError">`)
	assert.Contains(t, s, "</QBXML>")
	assert.NotContains(t, s, "StandardTermsAddRq")

	// The envelope is still a well-formed document.
	require.NoError(t, walk(doc, "test", func(*xml.Decoder, xml.StartElement) error { return nil }))
}

func TestBuildBatchAddRejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"bad\x01ctl", "bad\xffutf", "nul\x00", "bad\uFFFE"} {
		t.Run(name, func(t *testing.T) {
			doc, err := BuildBatchAdd([]terms.Term{{Name: "Net 30", ID: 30}, {Name: name, ID: 1}})
			require.Error(t, err)
			assert.Nil(t, doc)

			var verr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "name", verr.Field)
		})
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Net 30"))
	assert.True(t, ValidName("tab\tand\nnewline"))
	assert.True(t, ValidName("Zahlung 30 Tage \u00fc \U0001F600"))
	assert.False(t, ValidName("bell\a"))
	assert.False(t, ValidName(string([]byte{0xc3})))
}

func TestBuildQuery(t *testing.T) {
	doc, err := BuildQuery()
	require.NoError(t, err)

	s := string(doc)
	assert.Contains(t, s, `<?qbxml version="13.0"?>`)
	assert.Contains(t, s, `<QBXMLMsgsRq onError="continueOnError">`)
	assert.Contains(t, s, `<StandardTermsQueryRq requestID="1"></StandardTermsQueryRq>`)
	assert.NotContains(t, s, "StandardTermsAddRq")
}

func TestEscapedNameRoundTrip(t *testing.T) {
	name := "A & B <C>"
	doc, err := BuildBatchAdd([]terms.Term{{Name: name, ID: 1}})
	require.NoError(t, err)

	s := string(doc)
	start := strings.Index(s, "<Name>") + len("<Name>")
	end := strings.Index(s, "</Name>")
	echoed := s[start:end]

	// Echo the escaped name back the way QuickBooks does in a success payload.
	resp := `<QBXML><QBXMLMsgsRs><StandardTermsAddRs requestID="1" statusCode="0" statusMessage="Status OK">` +
		`<StandardTermsRet><Name>` + echoed + `</Name><StdDiscountDays>1</StdDiscountDays></StandardTermsRet>` +
		`</StandardTermsAddRs></QBXMLMsgsRs></QBXML>`

	outcomes, err := ParseBatchAddResponse([]byte(resp))
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, name, outcomes[0].Name)
	assert.Equal(t, StatusCreated, outcomes[0].Status)
}
