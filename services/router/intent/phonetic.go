// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package intent implements the query normalization and intent
// resolution pipeline: spelling correction, phonetic and fuzzy
// matching, synonym expansion, class/subject extraction, and the
// layered priority search that turns a free-text query into a ranked
// list of portal destinations.
//
// # Description
//
// The pipeline is pure string processing over an immutable
// knowledge.Snapshot. Every invocation is independent; there is no
// shared mutable state and no locking. External collaborators (the
// translator, the LLM classifier, the remote search API) are consumed
// by the service layer, never by this package.
//
// The entry point is Engine.Resolve; the individual stages are exported
// because they are independently useful and independently tested.
package intent

import "strings"

// =============================================================================
// Phonetic Coding
// =============================================================================

// EmptyPhoneticCode is the sentinel returned for input with no letters.
const EmptyPhoneticCode = "0000"

// soundexClass maps a lowercase ASCII letter to its consonant digit
// class. Vowels and h/w/y carry no digit.
var soundexClass = map[byte]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// PhoneticCode converts a word to its 4-character phonetic code.
//
// # Description
//
// A Soundex-style encoding: the first letter is kept verbatim
// (uppercased), subsequent letters map to consonant digit classes,
// consecutive duplicate digits are suppressed, and the code is padded
// with zeros or truncated to exactly 4 characters. Non-alphabetic
// characters are filtered before coding; input with no letters yields
// EmptyPhoneticCode.
//
// Two words sound alike iff their codes are equal.
//
// # Example
//
//	PhoneticCode("monkey")  // "M520"
//	PhoneticCode("munkee")  // "M520"
//	PhoneticCode("123")     // "0000"
//
// There are no error conditions; a code is always produced.
func PhoneticCode(word string) string {
	letters := make([]byte, 0, len(word))
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 'a' && c <= 'z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return EmptyPhoneticCode
	}

	code := make([]byte, 0, 4)
	code = append(code, letters[0]-'a'+'A')

	prev := soundexClass[letters[0]]
	for _, c := range letters[1:] {
		d := soundexClass[c]
		if d != 0 && d != prev {
			code = append(code, d)
			if len(code) == 4 {
				break
			}
		}
		prev = d
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// PhoneticMatch reports whether two words share a phonetic code.
// Symmetric by construction.
func PhoneticMatch(a, b string) bool {
	return PhoneticCode(a) == PhoneticCode(b)
}

// phoneticMatchUseful is PhoneticMatch restricted to inputs where the
// coding actually carries signal: two no-letter strings share the
// sentinel code but do not sound alike.
func phoneticMatchUseful(a, b string) bool {
	ca := PhoneticCode(a)
	if ca == EmptyPhoneticCode {
		return false
	}
	return ca == PhoneticCode(strings.TrimSpace(b))
}
