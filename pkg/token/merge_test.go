package token

import "testing"

func TestMergeCandidates_Empty(t *testing.T) {
	rec, ok := MergeCandidates(nil)
	if ok || rec != nil {
		t.Error("Expected no result for empty candidates")
	}
}

func TestMergeCandidates_Single(t *testing.T) {
	rec, ok := MergeCandidates([]Record{
		{Address: "0xabc", SourceName: "coingecko", Decimals: 18},
	})
	if !ok {
		t.Fatal("Expected a result for a single candidate")
	}
	if rec.Verified {
		t.Error("A lone candidate must not be verified")
	}
	if rec.SourceName != "coingecko" {
		t.Errorf("Expected source coingecko, got %s", rec.SourceName)
	}
}

func TestMergeCandidates_MajorityWins(t *testing.T) {
	candidates := []Record{
		{Address: "0x1111111111111111111111111111111111111111", SourceName: "coingecko", Decimals: 18},
		{Address: "0x2222222222222222222222222222222222222222", SourceName: "coinmarketcap", Decimals: DecimalsUnknown},
		// Same address as the first, different case
		{Address: "0X1111111111111111111111111111111111111111", SourceName: "dexscreener", Decimals: DecimalsUnknown},
	}

	rec, ok := MergeCandidates(candidates)
	if !ok {
		t.Fatal("Expected a merged result")
	}
	if rec.Address != "0x1111111111111111111111111111111111111111" {
		t.Errorf("Expected the majority address, got %s", rec.Address)
	}
	if !rec.Verified {
		t.Error("Two agreeing sources must mark the record verified")
	}
	if rec.SourceName != "coingecko" {
		t.Errorf("Expected the highest-priority agreeing source, got %s", rec.SourceName)
	}
}

func TestMergeCandidates_TieGoesToPriority(t *testing.T) {
	candidates := []Record{
		{Address: "0xaaa", SourceName: "coingecko"},
		{Address: "0xbbb", SourceName: "coinmarketcap"},
	}

	rec, ok := MergeCandidates(candidates)
	if !ok {
		t.Fatal("Expected a merged result")
	}
	if rec.Address != "0xaaa" {
		t.Errorf("Expected the higher-priority address to win the tie, got %s", rec.Address)
	}
	if rec.Verified {
		t.Error("A one-vote winner must not be verified")
	}
}

func TestMergeCandidates_Backfill(t *testing.T) {
	candidates := []Record{
		{Address: "0xabc", SourceName: "coinmarketcap", Decimals: DecimalsUnknown},
		{Address: "0xABC", SourceName: "coingecko", Decimals: 9, Name: "Some Token"},
	}

	rec, ok := MergeCandidates(candidates)
	if !ok {
		t.Fatal("Expected a merged result")
	}
	if rec.SourceName != "coinmarketcap" {
		t.Errorf("Expected the first source to win, got %s", rec.SourceName)
	}
	if rec.Decimals != 9 {
		t.Errorf("Expected decimals backfilled to 9, got %d", rec.Decimals)
	}
	if rec.Name != "Some Token" {
		t.Errorf("Expected name backfilled, got %q", rec.Name)
	}
}
