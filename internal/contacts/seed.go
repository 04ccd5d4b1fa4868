package contacts

import (
	"context"
	"fmt"
	"time"

	"rolodex/internal/domain"
)

// Adder is implemented by stores that can take a fully populated contact
type Adder interface {
	Store
	Add(ctx context.Context, c domain.Contact) (domain.Contact, error)
}

// SampleContacts is the starter address book loaded into empty stores
var SampleContacts = []domain.Contact{
	{First: "Shruti", Last: "Kapoor", Twitter: "@shrutikapoor08", Avatar: "https://sessionize.com/image/124e-400o400o2-wHVdAuNaxi8KJrgtN3ZKci.jpg"},
	{First: "Glenn", Last: "Reyes", Twitter: "@glnnrys", Avatar: "https://sessionize.com/image/1940-400o400o2-Enh9dnYmrLYhJSTTPSw3MH.jpg"},
	{First: "Ryan", Last: "Florence", Avatar: "https://sessionize.com/image/9273-400o400o2-3tyrUE3HjsCHJLU5aUJCja.jpg"},
	{First: "Oscar", Last: "Newman", Twitter: "@__oscarnewman", Avatar: "https://sessionize.com/image/d14d-400o400o2-pyB229HyFPCnUcZhHf3kWS.png"},
	{First: "Michael", Last: "Jackson", Avatar: "https://sessionize.com/image/fd45-400o400o2-fw91uCdGU9hFP334dnyVCr.jpg"},
	{First: "Christopher", Last: "Chedeau", Twitter: "@Vjeux", Avatar: "https://sessionize.com/image/b07e-400o400o2-KgNRF3S9sD5ZR4UsG7hG4g.jpg"},
	{First: "Cameron", Last: "Matheson", Twitter: "@cmatheson", Avatar: "https://sessionize.com/image/262f-400o400o2-UBPQueK3fayaCmsyUc1Ljf.jpg"},
	{First: "Brooks", Last: "Lybrand", Twitter: "@BrooksLybrand", Avatar: "https://sessionize.com/image/820b-400o400o2-Ja1KDrBAu5NzYTPLSC3GW8.jpg"},
	{First: "Alex", Last: "Anderson", Twitter: "@ralex1993", Avatar: "https://sessionize.com/image/df38-400o400o2-JwbChVUj6V7DwZMc9vJEHc.jpg"},
	{First: "Kent C.", Last: "Dodds", Twitter: "@kentcdodds", Avatar: "https://sessionize.com/image/5578-400o400o2-BMT43t5kd2U1XstaNnM6Ax.jpg"},
	{First: "Nevi", Last: "Shah", Twitter: "@nevikashah", Avatar: "https://sessionize.com/image/c9d5-400o400o2-Sri5qnQmscaJXVB8m3VBgf.jpg"},
	{First: "Andrew", Last: "Petersen", Avatar: "https://sessionize.com/image/2694-400o400o2-MYYTsnszbLKTzyqJV17w2q.png"},
	{First: "Scott", Last: "Smerchek", Twitter: "@smerchek", Avatar: "https://sessionize.com/image/907a-400o400o2-9TM2CCmvrw6ttmJiTw4Lz8.jpg"},
	{First: "Giovanni", Last: "Benussi", Twitter: "@giovannibenussi", Avatar: "https://sessionize.com/image/08be-400o400o2-WtYGFFR1ZUJHL9tKyVBNPV.jpg"},
	{First: "Igor", Last: "Minar", Twitter: "@IgorMinar", Avatar: "https://sessionize.com/image/f814-400o400o2-n2ua5nM9qwZA2hiGdr1T7N.jpg"},
	{First: "Brandon", Last: "Kish", Avatar: "https://sessionize.com/image/fb82-400o400o2-LbvwhTVMrYLDdN3z4iEFMp.jpeg"},
	{First: "Arisa", Last: "Fukuzaki", Twitter: "@arisa_dev", Avatar: "https://sessionize.com/image/fcda-400o400o2-XiYRtKK5Dvng5AeyC8PiUA.png"},
	{First: "Alexandra", Last: "Spalato", Twitter: "@alexandraspalato", Avatar: "https://sessionize.com/image/c8c3-400o400o2-PR5UsgApAVEADZRixV4H8e.jpeg"},
	{First: "Cat", Last: "Johnson", Avatar: "https://sessionize.com/image/7594-400o400o2-hWtdCjbdFdLgE2vEXBJtyo.jpg"},
	{First: "Ashley", Last: "Narcisse", Twitter: "@_darkfadr", Avatar: "https://sessionize.com/image/5636-400o400o2-TWgi8vELMFoB3hB9uPw62d.jpg"},
	{First: "Edmund", Last: "Hung", Twitter: "@_edmundhung", Avatar: "https://sessionize.com/image/6aeb-400o400o2-Q5tAiuzKGgzSje9ZsK3Yu5.JPG"},
	{First: "Clifford", Last: "Fajardo", Twitter: "@cliffordfajard0", Avatar: "https://sessionize.com/image/30f1-400o400o2-wJBdJ6sFayjKmJycYKoHSe.jpg"},
	{First: "Erick", Last: "Tamayo", Twitter: "@ericktamayo", Avatar: "https://sessionize.com/image/6faa-400o400o2-amseBRDkdg7wSK5tjsFDiG.jpg"},
	{First: "Paul", Last: "Bratslavsky", Twitter: "@codingthirty", Avatar: "https://sessionize.com/image/feba-400o400o2-R4GE7eqegJNFf3cQ567obs.jpg"},
	{First: "Pedro", Last: "Cattori", Twitter: "@pcattori", Avatar: "https://sessionize.com/image/c315-400o400o2-spjM5A6VVfVNnQsuwvX3DY.jpg"},
	{First: "Andre", Last: "Landgraf", Twitter: "@AndreLandgraf94", Avatar: "https://sessionize.com/image/eec1-400o400o2-HkvWKLFqecmFxLwqR9KMRw.jpg"},
	{First: "Monica", Last: "Powell", Twitter: "@indigitalcolor", Avatar: "https://sessionize.com/image/c73a-400o400o2-4MTaTq6ftC15hqwtqUJmTC.jpg"},
	{First: "Brian", Last: "Lee", Twitter: "@brian_dlee", Avatar: "https://sessionize.com/image/cef7-400o400o2-KBZUydbjfkfGACQmjbHEvX.jpeg"},
	{First: "Sean", Last: "McQuaid", Twitter: "@SeanMcQuaidCode", Avatar: "https://sessionize.com/image/f83b-400o400o2-Pyw3chmeHMxGsNoj3nQmWU.jpg"},
	{First: "Shane", Last: "Walker", Twitter: "@swalker326", Avatar: "https://sessionize.com/image/a9fc-400o400o2-JHBnWZRoxp7QX74Hdac7AZ.jpg"},
	{First: "Jon", Last: "Jensen", Twitter: "@jenseng", Avatar: "https://sessionize.com/image/6644-400o400o2-aHnGHb5Pdu3D32MbfrnQbj.jpg"},
}

// Seed loads SampleContacts into store when it holds no contacts yet.
// It returns the number of contacts added.
func Seed(ctx context.Context, store Adder) (int, error) {
	existing, err := store.List(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("check existing contacts: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	base := time.Now().UTC()
	for i, c := range SampleContacts {
		c.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		if _, err := store.Add(ctx, c); err != nil {
			return i, fmt.Errorf("seed contact %d: %w", i, err)
		}
	}
	return len(SampleContacts), nil
}
