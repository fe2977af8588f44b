package qbxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/terms"
)

// Outcome is the result of one StandardTermsAddRq item. Code is -1 when the
// response carried no usable statusCode.
type Outcome struct {
	Name      string `json:"name" yaml:"name"`
	Status    Status `json:"status" yaml:"status"`
	Code      int    `json:"code" yaml:"code"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}

type termsAddRs struct {
	RequestID     string    `xml:"requestID,attr"`
	StatusCode    string    `xml:"statusCode,attr"`
	StatusMessage string    `xml:"statusMessage,attr"`
	Ret           *termsRet `xml:"StandardTermsRet"`
}

type termsRet struct {
	ListID          string `xml:"ListID"`
	Name            string `xml:"Name"`
	StdDueDays      string `xml:"StdDueDays"`
	StdDiscountDays string `xml:"StdDiscountDays"`
}

// ParseBatchAddResponse classifies every StandardTermsAddRs element in doc,
// in document order. Elements with a missing or non-numeric statusCode are
// failures. Only a document that is not well-formed returns an error.
func ParseBatchAddResponse(doc []byte) ([]Outcome, error) {
	var outcomes []Outcome
	err := walk(doc, "add response", func(dec *xml.Decoder, start xml.StartElement) error {
		if start.Name.Local != "StandardTermsAddRs" {
			return nil
		}
		var rs termsAddRs
		if err := dec.DecodeElement(&rs, &start); err != nil {
			return errors.NewProtocolError("add response", "malformed StandardTermsAddRs", err)
		}
		outcomes = append(outcomes, classifyAdd(rs))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

func classifyAdd(rs termsAddRs) Outcome {
	out := Outcome{RequestID: rs.RequestID, Status: StatusFailed, Code: -1}
	code, ok := parseCode(rs.StatusCode)
	if ok {
		out.Code = code
		out.Status = Classify(code)
	}

	switch out.Status {
	case StatusCreated:
		if rs.Ret != nil {
			out.Name = rs.Ret.Name
		}
	case StatusAlreadyExists:
		out.Message = rs.StatusMessage
	default:
		out.Message = rs.StatusMessage
		if out.Message == "" {
			out.Message = UnknownErrorMessage
		}
	}
	return out
}

// ParseQueryResponse returns the terms listed in a StandardTermsQueryRs
// document. Entries without a Name or an integer StdDiscountDays are skipped.
// A query status other than ok or "no match" is a protocol error.
func ParseQueryResponse(doc []byte) ([]terms.Term, error) {
	list := []terms.Term{}
	err := walk(doc, "query response", func(dec *xml.Decoder, start xml.StartElement) error {
		switch start.Name.Local {
		case "StandardTermsQueryRs":
			return checkQueryStatus(start)
		case "StandardTermsRet":
			var ret termsRet
			if err := dec.DecodeElement(&ret, &start); err != nil {
				return errors.NewProtocolError("query response", "malformed StandardTermsRet", err)
			}
			if t, ok := ret.term(); ok {
				list = append(list, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func checkQueryStatus(start xml.StartElement) error {
	raw := attr(start, "statusCode")
	code, ok := parseCode(raw)
	if ok && (code == CodeOK || code == CodeNoMatch) {
		return nil
	}
	msg := attr(start, "statusMessage")
	if msg == "" {
		msg = UnknownErrorMessage
	}
	return errors.NewProtocolError("query response", "status "+raw+": "+msg, nil)
}

func (r termsRet) term() (terms.Term, bool) {
	if r.Name == "" {
		return terms.Term{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(r.StdDiscountDays))
	if err != nil {
		return terms.Term{}, false
	}
	return terms.Term{Name: r.Name, ID: id}, true
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// walk calls visit for every start element of doc. visit may consume the
// element with DecodeElement.
func walk(doc []byte, operation string, visit func(*xml.Decoder, xml.StartElement) error) error {
	if len(bytes.TrimSpace(doc)) == 0 {
		return errors.NewProtocolError(operation, "empty document", nil)
	}
	if err := checkDocument(doc, operation); err != nil {
		return err
	}

	dec := newDecoder(doc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewProtocolError(operation, "malformed document", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if err := visit(dec, start); err != nil {
			return err
		}
	}
}

// checkDocument requires exactly one root element, with nothing but
// whitespace, comments and processing instructions around it.
func checkDocument(doc []byte, operation string) error {
	dec := newDecoder(doc)
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.NewProtocolError(operation, "malformed document", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if roots > 0 {
					return errors.NewProtocolError(operation, "content after root element", nil)
				}
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth > 0 || len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			if roots > 0 {
				return errors.NewProtocolError(operation, "content after root element", nil)
			}
			return errors.NewProtocolError(operation, "text before root element", nil)
		}
	}
	if roots == 0 {
		return errors.NewProtocolError(operation, "no root element", nil)
	}
	return nil
}

func newDecoder(doc []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	// Transports hand over UTF-8 whatever the declaration says.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return dec
}

// AttachNames fills empty outcome names from the request list, matching the
// 1-based requestID of each outcome to its position in requested.
func AttachNames(outcomes []Outcome, requested []terms.Term) {
	for i := range outcomes {
		if outcomes[i].Name != "" {
			continue
		}
		n, err := strconv.Atoi(outcomes[i].RequestID)
		if err != nil || n < 1 || n > len(requested) {
			continue
		}
		outcomes[i].Name = requested[n-1].Name
	}
}
