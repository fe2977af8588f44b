// Package qbxml builds and parses the qbXML documents exchanged with
// QuickBooks Desktop for standard payment terms.
//
// Only two exchanges are supported: a batch of StandardTermsAddRq items sent
// with onError="continueOnError", and a StandardTermsQueryRq listing every
// standard term. Per-item results of a batch are reported as Outcome values;
// only a document that is not well-formed fails a parse.
package qbxml

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/termsync/pkg/constants"
	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/terms"
)

// OnErrorContinue makes QuickBooks process every item of a batch even when an
// earlier item fails.
const OnErrorContinue = "continueOnError"

// declaration precedes every request document.
const declaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n" +
	`<?qbxml version="` + constants.QBXMLVersion + `"?>` + "\n"

type requestEnvelope struct {
	XMLName xml.Name    `xml:"QBXML"`
	Msgs    requestMsgs `xml:"QBXMLMsgsRq"`
}

type requestMsgs struct {
	OnError string        `xml:"onError,attr"`
	Adds    []termsAddRq  `xml:"StandardTermsAddRq"`
	Query   *termsQueryRq `xml:"StandardTermsQueryRq,omitempty"`
}

type termsAddRq struct {
	RequestID string   `xml:"requestID,attr"`
	Add       termsAdd `xml:"StandardTermsAdd"`
}

type termsAdd struct {
	Name            escapedText `xml:"Name"`
	StdDueDays      int         `xml:"StdDueDays"`
	StdDiscountDays int         `xml:"StdDiscountDays"`
}

type termsQueryRq struct {
	RequestID string `xml:"requestID,attr"`
}

// escapedText is written verbatim; the value must already be escaped.
type escapedText struct {
	Value string `xml:",innerxml"`
}

// nameEscaper replaces &, < and > in a single pass, so the ampersands it
// introduces are never escaped again.
var nameEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeName escapes the characters QuickBooks requires escaped in a Name.
func EscapeName(name string) string {
	return nameEscaper.Replace(name)
}

// ValidName reports whether name is valid UTF-8 made only of characters
// allowed in an XML document.
func ValidName(name string) bool {
	if !utf8.ValidString(name) {
		return false
	}
	for _, r := range name {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// BuildBatchAdd returns a request document adding every term in list.
// Items carry a 1-based requestID matching their position in list.
// An empty list produces an envelope without items. A name that cannot be
// written as XML text fails the whole build with a ValidationError.
func BuildBatchAdd(list []terms.Term) ([]byte, error) {
	msgs := requestMsgs{OnError: OnErrorContinue}
	for i, t := range list {
		if !ValidName(t.Name) {
			return nil, errors.NewValidationError("name", t.Name, "contains characters not allowed in XML")
		}
		msgs.Adds = append(msgs.Adds, termsAddRq{
			RequestID: strconv.Itoa(i + 1),
			Add: termsAdd{
				Name:            escapedText{Value: EscapeName(t.Name)},
				StdDueDays:      constants.DefaultDueDays,
				StdDiscountDays: t.ID,
			},
		})
	}
	return encode(requestEnvelope{Msgs: msgs})
}

// BuildQuery returns a request document listing all standard terms.
func BuildQuery() ([]byte, error) {
	return encode(requestEnvelope{Msgs: requestMsgs{
		OnError: OnErrorContinue,
		Query:   &termsQueryRq{RequestID: "1"},
	}})
}

func encode(env requestEnvelope) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(declaration)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(env); err != nil {
		return nil, errors.WrapResource("encode", "qbxml request", "", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapResource("encode", "qbxml request", "", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
