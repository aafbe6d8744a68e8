package types

import (
	"testing"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

func TestStringListNilValue(t *testing.T) {
	var list StringList
	v, err := list.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "[]" {
		t.Fatalf("expected empty json array, got %v", v)
	}
}

func TestStringListScanBytes(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["go","sql"]`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(list) != 2 || list[0] != "go" || list[1] != "sql" {
		t.Fatalf("unexpected list %v", list)
	}
}

func TestScanRejectsUnsupportedType(t *testing.T) {
	var list StringList
	if err := list.Scan(42); err == nil {
		t.Fatal("expected error for int scan")
	}
	var links SocialLinks
	if err := links.Scan(3.14); err == nil {
		t.Fatal("expected error for float scan")
	}
}

func TestSkillProficienciesScan(t *testing.T) {
	var p SkillProficiencies
	if err := p.Scan(`{"go":"expert"}`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if p["go"] != enums.SkillProficiencyExpert {
		t.Fatalf("expected expert, got %q", p["go"])
	}
}

func TestSocialLinksHasAny(t *testing.T) {
	if (SocialLinks{}).HasAny() {
		t.Fatal("empty links should report none")
	}
	if (SocialLinks{Twitter: "   "}).HasAny() {
		t.Fatal("blank links should not count")
	}
	links := SocialLinks{GitHub: "github.com/octo"}
	if !links.HasAny() {
		t.Fatal("expected github link to count")
	}
	if got := links.Links(); len(got) != 1 || got["github"] != "github.com/octo" {
		t.Fatalf("unexpected links %v", got)
	}
}
