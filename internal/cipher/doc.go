// Package cipher implements the Scytale transposition cipher over a
// restricted alphabet.
//
// # Overview
//
// The plaintext is written row by row into a grid that is key columns wide
// and read back column by column. The last row may be short; nothing is
// padded, so ciphertext and plaintext always have the same length.
//
//	key = 3, plaintext "ABCDEFG"
//
//	A B C
//	D E F      ->  "ADG" + "BE" + "CF"  =  "ADGBECF"
//	G
//
// # Quick Start
//
// The package-level functions drop runes outside the alphabet and never
// reject text:
//
//	out, err := cipher.Encrypt("ШИФР СКИТАЛА", 4, cipher.DefaultAlphabet)
//	// out: "Ш ТИСАФКЛРИА"
//
//	plain, err := cipher.Decrypt(out, 4, cipher.DefaultAlphabet)
//	// plain: "ШИФР СКИТАЛА"
//
// # Policies
//
// A Scytale value binds key, alphabet and policy. PolicyStrict rejects text
// with foreign runes with *InvalidCharacterError, PolicyPermissive filters
// them out first:
//
//	s, err := cipher.New(4, cipher.DefaultAlphabet, cipher.PolicyStrict)
//	_, err = s.Encrypt("ШИФР, СКИТАЛА!")
//	// errors.Is(err, cipher.ErrInvalidCharacter) == true
//
// Callers that accept free-form input usually run Normalize first, which
// composes to NFC and upper-cases with Ukrainian rules.
//
// # Pipelines
//
// The cipher is also registered as the scytale_encrypt and scytale_decrypt
// operations, so several passes with different keys can be chained and
// reversed:
//
//	pipeline := &cipher.Pipeline{
//	    Operations: []cipher.OperationConfig{
//	        {Name: "scytale_encrypt", Parameters: map[string]interface{}{"key": 3}},
//	        {Name: "scytale_encrypt", Parameters: map[string]interface{}{"key": 5}},
//	    },
//	    Reversible: true,
//	}
//	encoded, _ := pipeline.Execute(ctx, []byte("ЗУСТРІЧ ОПІВНОЧІ"))
//	reversed, _ := pipeline.Reverse()
//	decoded, _ := reversed.Execute(ctx, encoded)
//
// # Thread Safety
//
// The transforms keep no state between calls. The operation registry is
// guarded by a read-write mutex. A Scytale value is immutable after New.
package cipher
