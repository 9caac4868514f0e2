package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
)

// mockSkillRepo records upserts in call order so tests can assert both
// the merge semantics and the deterministic write sequence.
type mockSkillRepo struct {
	flags    map[string]*model.SkillFlag // by "studentID/name"
	profiles map[string]string           // userID → github link
	order    []string                    // upserted skill names, in call order
}

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{
		flags:    make(map[string]*model.SkillFlag),
		profiles: make(map[string]string),
	}
}

func (m *mockSkillRepo) UpsertSkillFlag(_ context.Context, flag *model.SkillFlag) error {
	stored := *flag
	m.flags[flag.StudentID+"/"+flag.Name] = &stored
	m.order = append(m.order, flag.Name)
	return nil
}

func (m *mockSkillRepo) UpsertProfile(_ context.Context, profile *model.StudentProfile) error {
	m.profiles[profile.UserID] = profile.GitHubProfile
	return nil
}

func (m *mockSkillRepo) ListActiveSkills(_ context.Context, studentID string) ([]model.SkillFlag, error) {
	var out []model.SkillFlag
	for _, f := range m.flags {
		if f.StudentID == studentID && f.Active {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockSkillRepo) ActiveSkillNames(_ context.Context, studentID string) ([]string, error) {
	var out []string
	for _, f := range m.flags {
		if f.StudentID == studentID && f.Active {
			out = append(out, f.Name)
		}
	}
	return out, nil
}

func TestSaveProfile_SparseMerge(t *testing.T) {
	repo := newMockSkillRepo()
	svc := NewSkillService(repo, testLogger())

	err := svc.SaveProfile(context.Background(), "stu-1", "https://github.com/stu",
		map[string]bool{"python": true}, nil)
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	err = svc.SaveProfile(context.Background(), "stu-1", "https://github.com/stu",
		map[string]bool{"java": true}, nil)
	if err != nil {
		t.Fatalf("second SaveProfile() error = %v", err)
	}

	// Both skills active — the second save did not mention python, so
	// its row was never touched.
	names, _ := repo.ActiveSkillNames(context.Background(), "stu-1")
	if len(names) != 2 {
		t.Errorf("active skills = %v, want python and java", names)
	}
}

func TestSaveProfile_UnknownSkillRejectedBeforeAnyWrite(t *testing.T) {
	repo := newMockSkillRepo()
	svc := NewSkillService(repo, testLogger())

	err := svc.SaveProfile(context.Background(), "stu-1", "",
		map[string]bool{"python": true, "brainfuck": true}, nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}

	// The whole save is rejected up front: nothing half-applied.
	if len(repo.flags) != 0 || len(repo.profiles) != 0 {
		t.Errorf("a rejected save wrote %d flags and %d profiles, want none",
			len(repo.flags), len(repo.profiles))
	}
}

func TestSaveProfile_UnknownTool(t *testing.T) {
	repo := newMockSkillRepo()
	svc := NewSkillService(repo, testLogger())

	err := svc.SaveProfile(context.Background(), "stu-1", "", nil,
		map[string]bool{"kubernetes": true})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestSaveProfile_SortedWriteOrder(t *testing.T) {
	repo := newMockSkillRepo()
	svc := NewSkillService(repo, testLogger())

	err := svc.SaveProfile(context.Background(), "stu-1", "",
		map[string]bool{"python": true, "cpp": false, "java": true},
		map[string]bool{"git": true, "apis": false})
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	// Languages first, each map in sorted name order, independent of
	// JSON map iteration order.
	want := []string{"cpp", "java", "python", "apis", "git"}
	if len(repo.order) != len(want) {
		t.Fatalf("upsert order = %v, want %v", repo.order, want)
	}
	for i := range want {
		if repo.order[i] != want[i] {
			t.Errorf("upsert order[%d] = %s, want %s", i, repo.order[i], want[i])
		}
	}
}

func TestSaveProfile_KindFixedBySourceMap(t *testing.T) {
	repo := newMockSkillRepo()
	svc := NewSkillService(repo, testLogger())

	err := svc.SaveProfile(context.Background(), "stu-1", "",
		map[string]bool{"python": true},
		map[string]bool{"docker": true})
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	if got := repo.flags["stu-1/python"].Kind; got != model.SkillKindLanguage {
		t.Errorf("python kind = %q, want language", got)
	}
	if got := repo.flags["stu-1/docker"].Kind; got != model.SkillKindTool {
		t.Errorf("docker kind = %q, want tool", got)
	}
}

func TestSaveProfile_StoresGitHubLink(t *testing.T) {
	repo := newMockSkillRepo()
	svc := NewSkillService(repo, testLogger())

	if err := svc.SaveProfile(context.Background(), "stu-1", "https://github.com/me", nil, nil); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if repo.profiles["stu-1"] != "https://github.com/me" {
		t.Errorf("stored link = %q", repo.profiles["stu-1"])
	}
}
