package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicRead(t *testing.T) {
	doc := PublicRead("media", []string{"thumbnails/", "streams/"})

	require.Len(t, doc.Statement, 2)
	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, "arn:aws:s3:::media/thumbnails/*", doc.Statement[0].Resource[0])
	assert.Equal(t, "arn:aws:s3:::media/streams/*", doc.Statement[1].Resource[0])
	assert.True(t, doc.Statement[0].Principal.Public())
}

func TestJSONParse_PreservesPublicResources(t *testing.T) {
	raw, err := PublicRead("media", []string{"thumbnails/"}).JSON()
	require.NoError(t, err)
	assert.Contains(t, raw, `"Principal": "*"`)

	doc, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"arn:aws:s3:::media/thumbnails/*"}, doc.PublicResources())
}

func TestParse_ScalarsAndTypedPrincipal(t *testing.T) {
	doc, err := Parse(`{
		"Version": "2012-10-17",
		"Statement": [
			{"Effect": "Allow", "Principal": {"AWS": "*"}, "Action": "s3:GetObject", "Resource": "arn:aws:s3:::media/*"},
			{"Effect": "Allow", "Principal": {"AWS": ["arn:aws:iam::123456789012:root"]}, "Action": ["s3:PutObject"], "Resource": ["arn:aws:s3:::media/uploads/*"]},
			{"Effect": "Deny", "Principal": "*", "Action": "s3:*", "Resource": "arn:aws:s3:::media"}
		]
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"arn:aws:s3:::media/*"}, doc.PublicResources())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(`{"Statement": [{"Principal": "someone"}]}`)
	assert.Error(t, err)

	_, err = Parse(`not json`)
	assert.Error(t, err)
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		resource string
		prefix   string
		ok       bool
	}{
		{"arn:aws:s3:::media/thumbnails/*", "thumbnails/", true},
		{"arn:aws:s3:::media/*", "", true},
		{"arn:aws:s3:::media", "", true},
		{"arn:aws:s3:::other/thumbnails/*", "", false},
		{"arn:aws:s3:::media-backup/*", "", false},
		{"arn:aws:s3:::media/***", "**", true},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			prefix, ok := PrefixOf("media", tt.resource)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestPublicStatements_Negations(t *testing.T) {
	doc, err := Parse(`{
		"Version": "2012-10-17",
		"Statement": [
			{"Sid": "A", "Effect": "Allow", "Principal": "*", "Action": "s3:GetObject", "NotResource": "arn:aws:s3:::media/private/*"},
			{"Sid": "B", "Effect": "Allow", "NotPrincipal": {"AWS": "arn:aws:iam::123456789012:root"}, "NotAction": "s3:DeleteObject", "Resource": "arn:aws:s3:::media/*"},
			{"Sid": "C", "Effect": "Allow", "Principal": {"AWS": ["arn:aws:iam::123456789012:root"]}, "Action": "s3:*", "Resource": "arn:aws:s3:::media/*"}
		]
	}`)
	require.NoError(t, err)

	public := doc.PublicStatements()
	require.Len(t, public, 2)
	assert.Equal(t, []string{"NotResource"}, public[0].Negated())
	assert.Equal(t, []string{"NotPrincipal", "NotAction"}, public[1].Negated())
	assert.True(t, public[0].ReadOnly())
	assert.False(t, public[1].ReadOnly())
}

func TestStatement_ReadOnly(t *testing.T) {
	assert.True(t, Statement{Action: StringList{"s3:GetObject", "S3:getobject"}}.ReadOnly())
	assert.False(t, Statement{Action: StringList{"s3:GetObject", "s3:PutObject"}}.ReadOnly())
	assert.False(t, Statement{Action: StringList{"s3:*"}}.ReadOnly())
	assert.False(t, Statement{}.ReadOnly())
}

func TestHasWildcard(t *testing.T) {
	assert.False(t, HasWildcard("thumbnails/"))
	assert.True(t, HasWildcard("*"))
	assert.True(t, HasWildcard("**"))
	assert.True(t, HasWildcard("thumb?ails/"))
}
