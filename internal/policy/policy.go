// Package policy builds and inspects S3 bucket policy documents.
package policy

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	Version = "2012-10-17"

	EffectAllow = "Allow"
	EffectDeny  = "Deny"

	ActionGetObject = "s3:GetObject"
)

// Document is an IAM resource policy.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

type Statement struct {
	Sid          string     `json:"Sid,omitempty"`
	Effect       string     `json:"Effect"`
	Principal    Principal  `json:"Principal"`
	NotPrincipal *Principal `json:"NotPrincipal,omitempty"`
	Action       StringList `json:"Action,omitempty"`
	NotAction    StringList `json:"NotAction,omitempty"`
	Resource     StringList `json:"Resource,omitempty"`
	NotResource  StringList `json:"NotResource,omitempty"`
}

// Public reports whether the statement allows anyone. An Allow with NotPrincipal
// matches everyone outside the listed principals and counts as public.
func (st Statement) Public() bool {
	if st.Effect != EffectAllow {
		return false
	}
	return st.Principal.Public() || st.NotPrincipal != nil
}

// Negated lists the NotPrincipal, NotAction and NotResource elements the statement uses.
func (st Statement) Negated() []string {
	var out []string
	if st.NotPrincipal != nil {
		out = append(out, "NotPrincipal")
	}
	if len(st.NotAction) > 0 {
		out = append(out, "NotAction")
	}
	if len(st.NotResource) > 0 {
		out = append(out, "NotResource")
	}
	return out
}

// ReadOnly reports whether every action is s3:GetObject.
func (st Statement) ReadOnly() bool {
	if len(st.Action) == 0 {
		return false
	}
	for _, a := range st.Action {
		if !strings.EqualFold(a, ActionGetObject) {
			return false
		}
	}
	return true
}

// StringList accepts both a single string and a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = many
	return nil
}

// Principal is either the anonymous "*" or a map of principal type to identifiers.
type Principal struct {
	Anonymous bool
	Typed     map[string]StringList
}

func (p Principal) MarshalJSON() ([]byte, error) {
	if p.Anonymous {
		return json.Marshal("*")
	}
	return json.Marshal(p.Typed)
}

func (p *Principal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "*" {
			return fmt.Errorf("unsupported principal %q", s)
		}
		*p = Principal{Anonymous: true}
		return nil
	}
	var typed map[string]StringList
	if err := json.Unmarshal(data, &typed); err != nil {
		return fmt.Errorf("decoding principal: %w", err)
	}
	*p = Principal{Typed: typed}
	return nil
}

// Public reports whether the principal matches everyone, including {"AWS": "*"}.
func (p Principal) Public() bool {
	if p.Anonymous {
		return true
	}
	for _, id := range p.Typed["AWS"] {
		if id == "*" {
			return true
		}
	}
	return false
}

// BucketARN returns the ARN of a bucket.
func BucketARN(bucket string) string {
	return "arn:aws:s3:::" + bucket
}

// ObjectARN returns the ARN matching every object under prefix.
func ObjectARN(bucket, prefix string) string {
	return BucketARN(bucket) + "/" + prefix + "*"
}

// PublicRead grants anonymous s3:GetObject on each prefix, one statement per prefix.
func PublicRead(bucket string, prefixes []string) Document {
	doc := Document{Version: Version}
	for i, prefix := range prefixes {
		doc.Statement = append(doc.Statement, Statement{
			Sid:       fmt.Sprintf("PublicRead%d", i+1),
			Effect:    EffectAllow,
			Principal: Principal{Anonymous: true},
			Action:    StringList{ActionGetObject},
			Resource:  StringList{ObjectARN(bucket, prefix)},
		})
	}
	return doc
}

func (d Document) JSON() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding policy: %w", err)
	}
	return string(data), nil
}

// Parse decodes a policy document.
func Parse(doc string) (Document, error) {
	var d Document
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return Document{}, fmt.Errorf("parsing policy: %w", err)
	}
	return d, nil
}

// PublicStatements returns the Allow statements that grant access to the public.
func (d Document) PublicStatements() []Statement {
	var out []Statement
	for _, st := range d.Statement {
		if st.Public() {
			out = append(out, st)
		}
	}
	return out
}

// PublicResources returns every resource an Allow statement grants to the public.
func (d Document) PublicResources() []string {
	var out []string
	for _, st := range d.PublicStatements() {
		out = append(out, st.Resource...)
	}
	return out
}

// HasWildcard reports whether an object prefix contains an ARN wildcard.
func HasWildcard(prefix string) bool {
	return strings.ContainsAny(prefix, "*?")
}

// PrefixOf returns the object prefix a resource ARN of bucket covers. ok is false when
// the resource is not an object ARN of the bucket. The bucket root itself and "/*"
// both yield an empty prefix. Only one trailing "*" is removed; any wildcard left
// in the prefix widens it, see HasWildcard.
func PrefixOf(bucket, resource string) (prefix string, ok bool) {
	root := BucketARN(bucket)
	if resource == root {
		return "", true
	}
	rest, found := strings.CutPrefix(resource, root+"/")
	if !found {
		return "", false
	}
	return strings.TrimSuffix(rest, "*"), true
}
