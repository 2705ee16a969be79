package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeepsAllowedMarkup(t *testing.T) {
	in := `<p>Halo <strong>dunia</strong> dan <em>teman</em></p>`
	assert.Equal(t, in, Normalize(in))
}

func TestNormalizeDropsScript(t *testing.T) {
	out := Normalize(`<p>aman</p><script>alert("x")</script>`)
	assert.Equal(t, `<p>aman</p>`, out)
}

func TestNormalizeUnwrapsUnknownTags(t *testing.T) {
	out := Normalize(`<div><span>teks</span> polos</div>`)
	assert.Equal(t, `teks polos`, out)
}

func TestNormalizeStripsEventHandlers(t *testing.T) {
	out := Normalize(`<a href="https://example.com" onclick="steal()">tautan</a>`)
	assert.Equal(t, `<a href="https://example.com">tautan</a>`, out)
}

func TestNormalizeRejectsJavascriptURL(t *testing.T) {
	out := Normalize(`<a href="javascript:alert(1)">klik</a>`)
	assert.Equal(t, `<a>klik</a>`, out)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		`<p>Pengumuman <strong>penting</strong></p><ul><li>satu</li><li>dua</li></ul>`,
		`<h2>Judul</h2><p>Isi dengan <a href="https://sekolah.sch.id" title="situs">tautan</a></p>`,
		`<blockquote>kutipan</blockquote><p>akhir<br/></p>`,
		`<p><img alt="foto" src="/uploads/articles/a.jpg"/></p>`,
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input: %s", in)
	}
}

func TestExcerptStripsMarkupAndTruncates(t *testing.T) {
	out := Excerpt(`<p>Siswa SMK Nusantara Tech meraih juara pertama lomba robotika tingkat provinsi</p>`, 30)
	assert.LessOrEqual(t, len([]rune(out)), 34)
	assert.NotContains(t, out, "<")
	assert.Contains(t, out, "...")
}

func TestExcerptShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "Singkat saja", Excerpt("<p>Singkat saja</p>", 160))
}
