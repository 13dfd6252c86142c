package goquery_test

import (
	"testing"

	"github.com/fwojciec/facdir"
	"github.com/fwojciec/facdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directoryURL = "https://music.uni.edu/faculty/"

func ldPage(blocks ...string) string {
	html := "<!DOCTYPE html><html><head><title>Faculty</title>"
	for _, b := range blocks {
		html += `<script type="application/ld+json">` + b + `</script>`
	}
	return html + "</head><body><h1>Faculty</h1></body></html>"
}

func TestJSONLDStrategy_ID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, facdir.StrategyJSONLD, goquery.NewJSONLDStrategy().ID())
}

func TestJSONLDStrategy_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a single Person object", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","name":"Jane Doe","email":"mailto:jane@uni.edu","jobTitle":"Professor"}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Jane Doe", got[0].Name)
		assert.Equal(t, "Professor", got[0].Title)
		assert.Equal(t, "jane@uni.edu", got[0].Email)
		assert.Equal(t, directoryURL, got[0].DirectoryURL)
		require.NotNil(t, got[0].Diagnostics)
		assert.Equal(t, facdir.StrategyJSONLD, got[0].Diagnostics.Strategy)
		assert.InDelta(t, 0.9, got[0].Diagnostics.Confidence, 1e-9)
	})

	t.Run("matches Person inside a list of types", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":["Person","Researcher"],"name":"Ada Lovelace"}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Ada Lovelace", got[0].Name)
	})

	t.Run("accepts a top-level array", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`[{"@type":"Person","name":"A One"},{"@type":"WebPage","name":"Ignored"},{"@type":"Person","name":"B Two"}]`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 2)
		assert.Equal(t, "A One", got[0].Name)
		assert.Equal(t, "B Two", got[1].Name)
	})

	t.Run("finds Persons in ItemList entries", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"ItemList","itemListElement":[
			{"@type":"Person","name":"Direct Entry"},
			{"@type":"ListItem","position":2,"item":{"@type":"Person","name":"Wrapped Entry"}},
			{"@type":"ListItem","position":3,"item":{"@type":"Thing","name":"Not A Person"}}
		]}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 2)
		assert.Equal(t, "Direct Entry", got[0].Name)
		assert.Equal(t, "Wrapped Entry", got[1].Name)
	})

	t.Run("finds Organization members given singly or as a list", func(t *testing.T) {
		t.Parallel()

		html := ldPage(
			`{"@type":"Organization","name":"Dept","member":{"@type":"Person","name":"Solo Member"}}`,
			`{"@type":"CollegeOrUniversity","employee":[{"@type":"Person","name":"First Employee"},{"@type":"Person","name":"Second Employee"}]}`,
		)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 3)
		assert.Equal(t, "Solo Member", got[0].Name)
		assert.Equal(t, "First Employee", got[1].Name)
		assert.Equal(t, "Second Employee", got[2].Name)
	})

	t.Run("expands @graph", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@context":"https://schema.org","@graph":[{"@type":"WebSite"},{"@type":"Person","name":"Graph Person"}]}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Graph Person", got[0].Name)
	})

	t.Run("joins given and family name when name is missing", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","givenName":"Clara","familyName":"Schumann"}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Clara Schumann", got[0].Name)
	})

	t.Run("discards Persons without any name", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`[{"@type":"Person","email":"anon@uni.edu"},{"@type":"Person","name":"   "}]`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		assert.Empty(t, got)
	})

	t.Run("skips undecodable blocks and keeps scanning", func(t *testing.T) {
		t.Parallel()

		html := ldPage(
			`{"@type": "Person", "name": `,
			`{"@type":"Person","name":"Survivor"}`,
		)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Survivor", got[0].Name)
	})

	t.Run("decodes blocks with trailing commas", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","name":"Lenient Parse",}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Lenient Parse", got[0].Name)
	})

	t.Run("falls back to occupation name for title", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","name":"Occ Person","hasOccupation":{"@type":"Occupation","name":"Associate Professor of Voice"}}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "Associate Professor of Voice", got[0].Title)
	})

	t.Run("takes the first email of a list", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","name":"Two Emails","email":["first@uni.edu","second@uni.edu"]}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "first@uni.edu", got[0].Email)
	})

	t.Run("uses sameAs for profile and socials", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","name":"Social Person","description":"Plays the oboe.",
			"sameAs":["https://uni.edu/people/social","https://www.LinkedIn.com/in/social","https://twitter.com/social"]}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "https://uni.edu/people/social", got[0].ProfileURL)
		assert.Equal(t, []string{"https://www.LinkedIn.com/in/social", "https://twitter.com/social"}, got[0].Socials)
		assert.Equal(t, "Plays the oboe.", got[0].Bio)
	})

	t.Run("prefers url over sameAs for profile", func(t *testing.T) {
		t.Parallel()

		html := ldPage(`{"@type":"Person","name":"Url Person","url":"https://uni.edu/~url","sameAs":"https://facebook.com/url"}`)

		got := goquery.NewJSONLDStrategy().Extract(html, directoryURL)

		require.Len(t, got, 1)
		assert.Equal(t, "https://uni.edu/~url", got[0].ProfileURL)
		assert.Equal(t, []string{"https://facebook.com/url"}, got[0].Socials)
	})

	t.Run("returns nothing for pages without structured data", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewJSONLDStrategy().Extract(`<html><body><table><tr><td>x</td></tr></table></body></html>`, directoryURL)

		assert.Empty(t, got)
	})

	t.Run("returns nothing for empty content", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.NewJSONLDStrategy().Extract("", directoryURL))
	})
}
