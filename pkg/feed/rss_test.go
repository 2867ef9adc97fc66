package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRSS(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Förbundsnytt</title>
	<link>https://example.com</link>
	<item>
		<title>Nya distriktsrekord</title>
		<link>https://example.com/news/1</link>
		<description><![CDATA[<p>Tre nya <b>rekord</b> godkändes.</p>]]></description>
		<pubDate>Mon, 02 Jun 2025 10:00:00 +0200</pubDate>
		<guid>news-1</guid>
	</item>
	<item>
		<title>Utan guid</title>
		<link>https://example.com/news/2</link>
		<description>Beskrivning utan markup</description>
		<pubDate>Tue, 03 Jun 2025 10:00:00 +0200</pubDate>
	</item>
</channel>
</rss>`

	items := ParseRSS(rssContent)
	require.Len(t, items, 2)

	assert.Equal(t, "Nya distriktsrekord", items[0].Title)
	assert.Equal(t, "https://example.com/news/1", items[0].Link)
	assert.Equal(t, "Tre nya rekord godkändes.", items[0].Description, "markup must be stripped")
	assert.Equal(t, "news-1", items[0].GUID)
	assert.True(t, items[0].HasDate)

	// guid falls back to link
	assert.Equal(t, "https://example.com/news/2", items[1].GUID)
}

func TestParseRSS_DropsItemsMissingTitleOrLink(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Feed</title>
	<item>
		<description>no title, no link</description>
	</item>
	<item>
		<title>Kept</title>
		<link>https://example.com/kept</link>
	</item>
</channel>
</rss>`

	items := ParseRSS(rssContent)
	require.Len(t, items, 1)
	assert.Equal(t, "Kept", items[0].Title)
	assert.False(t, items[0].HasDate)
}

func TestParseRSS_GarbageInput(t *testing.T) {
	assert.Empty(t, ParseRSS(""))
	assert.Empty(t, ParseRSS("not xml at all"))
	assert.Empty(t, ParseRSS("<html><body>a web page</body></html>"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("plain text"))
	assert.Equal(t, "bold and link", stripHTML(`<b>bold</b> and <a href="https://x">link</a>`))
	assert.Equal(t, "a & b", stripHTML("a &amp; b"))
}
