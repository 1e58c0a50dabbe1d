package embedding

import "testing"

func TestSimpleTokenizer(t *testing.T) {
	tok := &SimpleTokenizer{}
	inputIDs, attentionMask, tokenTypeIDs := tok.Tokenize("hello world", 8)

	if len(inputIDs) != 8 || len(attentionMask) != 8 || len(tokenTypeIDs) != 8 {
		t.Fatalf("lengths: %d %d %d, want 8", len(inputIDs), len(attentionMask), len(tokenTypeIDs))
	}
	if inputIDs[0] != tokenCLS {
		t.Errorf("first token: got %d, want [CLS]", inputIDs[0])
	}
	if inputIDs[3] != tokenSEP {
		t.Errorf("token after words: got %d, want [SEP]", inputIDs[3])
	}
	// [CLS], hello, world, [SEP] attended; rest padding.
	for i := 0; i < 4; i++ {
		if attentionMask[i] != 1 {
			t.Errorf("attention_mask[%d] = %d, want 1", i, attentionMask[i])
		}
	}
	for i := 4; i < 8; i++ {
		if attentionMask[i] != 0 || inputIDs[i] != 0 {
			t.Errorf("padding at %d: ids=%d mask=%d", i, inputIDs[i], attentionMask[i])
		}
	}
}

func TestSimpleTokenizer_deterministic(t *testing.T) {
	tok := &SimpleTokenizer{}
	a, _, _ := tok.Tokenize("same text here", 16)
	b, _, _ := tok.Tokenize("same text here", 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("token %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestSimpleTokenizer_caseInsensitive(t *testing.T) {
	tok := &SimpleTokenizer{}
	a, _, _ := tok.Tokenize("Hello", 8)
	b, _, _ := tok.Tokenize("hello", 8)
	if a[1] != b[1] {
		t.Errorf("case should not change token ID: %d vs %d", a[1], b[1])
	}
}

func TestSimpleTokenizer_truncation(t *testing.T) {
	tok := &SimpleTokenizer{}
	inputIDs, _, _ := tok.Tokenize("one two three four five six", 4)
	if len(inputIDs) != 4 {
		t.Fatalf("length: got %d, want 4", len(inputIDs))
	}
	if inputIDs[0] != tokenCLS {
		t.Errorf("first token: got %d", inputIDs[0])
	}
}

func TestHashString_nonNegative(t *testing.T) {
	for _, s := range []string{"", "a", "hello", "\xff\xfe", "a very long string repeated a few times to overflow"} {
		if HashString(s) < 0 {
			t.Errorf("HashString(%q) is negative", s)
		}
	}
}
