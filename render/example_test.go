package render_test

import (
	"fmt"

	"japaneseannotate/kanji"
	"japaneseannotate/model"
	"japaneseannotate/render"
)

func ExampleSegments_perKanji() {
	kr := kanji.NewReadings(map[rune][]string{
		'入': {"ニュウ", "い.る", "い.り"},
		'見': {"ケン", "み.る"},
		'内': {"ナイ", "うち"},
		'川': {"セン", "かわ"},
	})
	tok := model.Token{Surface: "入見内川", Reading: "イリミナイカワ"}
	segs := render.Segments([]model.Token{tok}, render.Options{Kanji: kr})
	fmt.Println(render.Format(segs, render.Bracket))
	// Output: [入|いり][見|み][内|ない][川|かわ]
}
