package kanji

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleKanjidic = `<?xml version="1.0" encoding="UTF-8"?>
<kanjidic2>
<header><file_version>4</file_version></header>
<character>
<literal>入</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">ニュウ</reading>
<reading r_type="ja_kun">い.る</reading>
<reading r_type="ja_kun">い.り</reading>
<reading r_type="pinyin">ru4</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>見</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">ケン</reading>
<reading r_type="ja_kun">み.る</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>内</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">ナイ</reading>
<reading r_type="ja_kun">うち</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>川</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">セン</reading>
<reading r_type="ja_kun">かわ</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>学</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">ガク</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>校</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">コウ</reading>
</rmgroup></reading_meaning>
</character>
</kanjidic2>`

func loadSample(t *testing.T) *Readings {
	t.Helper()
	r, err := ParseKanjidic2(strings.NewReader(sampleKanjidic))
	if err != nil {
		t.Fatalf("ParseKanjidic2: %v", err)
	}
	return r
}

func TestParseKanjidic2(t *testing.T) {
	r := loadSample(t)
	if r.Len() != 6 {
		t.Fatalf("Len = %d, want 6", r.Len())
	}
	want := []string{"ニュウ", "い.る", "い.り"}
	if diff := cmp.Diff(want, r.Get('入')); diff != "" {
		t.Errorf("readings for 入 (-want +got):\n%s", diff)
	}
}

func TestFuriganaAlignmentForIriminaiKawa(t *testing.T) {
	r := loadSample(t)
	pairs, ok := r.Align("入見内川", "イリミナイカワ")
	if !ok {
		t.Fatal("alignment failed")
	}
	want := []Pair{{"入", "いり"}, {"見", "み"}, {"内", "ない"}, {"川", "かわ"}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("alignment (-want +got):\n%s", diff)
	}
}

func TestAlignGemination(t *testing.T) {
	r := loadSample(t)
	pairs, ok := r.Align("学校", "がっこう")
	if !ok {
		t.Fatal("alignment failed")
	}
	want := []Pair{{"学", "がっ"}, {"校", "こう"}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("alignment (-want +got):\n%s", diff)
	}
}

func TestAlignRendaku(t *testing.T) {
	r := NewReadings(map[rune][]string{'山': {"サン", "やま"}, '川': {"セン", "かわ"}})
	pairs, ok := r.Align("山川", "やまがわ")
	if !ok {
		t.Fatal("alignment failed")
	}
	if pairs[1].Reading != "がわ" {
		t.Errorf("second kanji reading = %q, want がわ", pairs[1].Reading)
	}
}

func TestAlignFailsWithoutCover(t *testing.T) {
	r := loadSample(t)
	if _, ok := r.Align("見内", "あいうえおかきく"); ok {
		t.Error("expected alignment to fail for unrelated reading")
	}
	var nilReadings *Readings
	if _, ok := nilReadings.Align("見", "み"); ok {
		t.Error("nil Readings must not align")
	}
}

func TestVariants(t *testing.T) {
	got := Variants("い.り", false)
	for _, want := range []string{"いり", "い"} {
		found := false
		for _, v := range got {
			if v == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Variants missing %q: %v", want, got)
		}
	}
	if GeminateForm("がく") != "がっ" {
		t.Errorf("GeminateForm(がく) = %q", GeminateForm("がく"))
	}
	if GeminateForm("つ") != "" {
		t.Errorf("single mora must not geminate")
	}
}
