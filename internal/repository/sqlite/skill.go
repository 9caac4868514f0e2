package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// compile-time check that *DB implements repository.SkillRepository
var _ repository.SkillRepository = (*DB)(nil)

// UpsertSkillFlag inserts or updates a single (student, skill) row.
//
// Only is_active and updated_at are overwritten on conflict. Proficiency
// keeps whatever the row already holds (the default 0 for rows this method
// created), and rows for skills the caller did not mention are never
// touched — a profile save merges into the registry, it does not replace
// it.
func (db *DB) UpsertSkillFlag(ctx context.Context, flag *model.SkillFlag) error {
	now := time.Now()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO student_skills (student_id, skill_name, skill_type, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (student_id, skill_name)
		DO UPDATE SET
			is_active  = excluded.is_active,
			updated_at = excluded.updated_at`,
		flag.StudentID,
		flag.Name,
		flag.Kind,
		flag.Active,
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting skill %q for student %s: %w", flag.Name, flag.StudentID, err)
	}

	flag.UpdatedAt = now
	return nil
}

// UpsertProfile inserts or overwrites the student's profile row.
func (db *DB) UpsertProfile(ctx context.Context, profile *model.StudentProfile) error {
	now := time.Now()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO student_profiles (user_id, github_profile, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id)
		DO UPDATE SET
			github_profile = excluded.github_profile,
			updated_at     = excluded.updated_at`,
		profile.UserID,
		profile.GitHubProfile,
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting profile for user %s: %w", profile.UserID, err)
	}

	profile.UpdatedAt = now
	return nil
}

// ListActiveSkills returns the student's active skill rows, name ascending
// so the profile page renders in a stable order.
func (db *DB) ListActiveSkills(ctx context.Context, studentID string) ([]model.SkillFlag, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT student_id, skill_name, skill_type, is_active, proficiency, updated_at
		FROM student_skills
		WHERE student_id = ? AND is_active = 1
		ORDER BY skill_name ASC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing skills for student %s: %w", studentID, err)
	}
	defer rows.Close()

	var skills []model.SkillFlag
	for rows.Next() {
		var s model.SkillFlag
		if err := rows.Scan(&s.StudentID, &s.Name, &s.Kind, &s.Active, &s.Proficiency, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning skill row: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating skill rows: %w", err)
	}

	return skills, nil
}

// ActiveSkillNames is the recommendation engine's view of the registry:
// just the names of the student's active skills.
func (db *DB) ActiveSkillNames(ctx context.Context, studentID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT skill_name FROM student_skills WHERE student_id = ? AND is_active = 1`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing active skill names for student %s: %w", studentID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning skill name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating skill names: %w", err)
	}

	return names, nil
}
