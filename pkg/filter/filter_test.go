package filter

import (
	"context"
	"errors"
	"testing"

	"show-notes/pkg/domain"
)

type errFilter struct{}

func (errFilter) ShouldKeep(ctx context.Context, src domain.Source) (bool, error) {
	return false, errors.New("filter error")
}

func blogs(srcs []domain.Source) []string {
	out := make([]string, 0, len(srcs))
	for _, s := range srcs {
		out = append(out, s.BlogURL)
	}
	return out
}

func TestApply_NoFilters(t *testing.T) {
	srcs := []domain.Source{{BlogURL: "https://tim.blog/a/"}, {BlogURL: "https://tim.blog/b/"}}

	got, err := Apply(context.Background(), srcs)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(got))
	}
}

func TestApply_FilterError(t *testing.T) {
	srcs := []domain.Source{{BlogURL: "https://tim.blog/a/"}}

	if _, err := Apply(context.Background(), srcs, errFilter{}); err == nil {
		t.Fatal("Expected error from filter, got nil")
	}
}

func TestCategoryFilter(t *testing.T) {
	srcs := []domain.Source{
		{BlogURL: "https://tim.blog/a/", Category: "Investors"},
		{BlogURL: "https://tim.blog/b/", Category: "Entrepreneurs"},
		{BlogURL: "https://tim.blog/c/", Category: "investors"},
		{BlogURL: "https://tim.blog/d/"},
	}

	got, err := Apply(context.Background(), srcs, NewCategoryFilter(" INVESTORS "))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	urls := blogs(got)
	if len(urls) != 2 || urls[0] != "https://tim.blog/a/" || urls[1] != "https://tim.blog/c/" {
		t.Fatalf("unexpected result %v", urls)
	}
}

func TestDuplicateFilter(t *testing.T) {
	srcs := []domain.Source{
		{BlogURL: "https://tim.blog/2020/12/03/daniel-ek/#more-53852"},
		{BlogURL: "https://TIM.blog/2020/12/03/daniel-ek/"},
		{BlogURL: "https://tim.blog/2020/10/14/naval/"},
		{BlogURL: "https://tim.blog/2020/10/14/naval/"},
	}

	got, err := Apply(context.Background(), srcs, NewDuplicateFilter())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	urls := blogs(got)
	if len(urls) != 2 || urls[0] != srcs[0].BlogURL || urls[1] != srcs[2].BlogURL {
		t.Fatalf("unexpected result %v", urls)
	}
}

func TestHostFilter(t *testing.T) {
	f := NewHostFilter("tim.blog")

	keep, err := f.ShouldKeep(context.Background(), domain.Source{BlogURL: "https://tim.blog/a/"})
	if err != nil || !keep {
		t.Errorf("Expected tim.blog to be kept, got %v, %v", keep, err)
	}

	keep, err = f.ShouldKeep(context.Background(), domain.Source{BlogURL: "https://example.com/a/"})
	if err != nil || keep {
		t.Errorf("Expected example.com to be dropped, got %v, %v", keep, err)
	}

	if _, err := f.ShouldKeep(context.Background(), domain.Source{BlogURL: "://bad"}); err == nil {
		t.Error("Expected parse error, got nil")
	}
}
