package main

import (
	"fmt"
	"strings"

	"github.com/henfal/mdubot"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	code := strings.ToLower(strings.TrimSpace(c.Code))

	if !c.Force {
		return mdubot.Errorf(mdubot.EINVALID, "deleting %q removes every crawled version and its index entries; re-run with --force to confirm", code)
	}

	// Course codes end in three digits, program codes in two.
	switch {
	case len(mdubot.DetectCourseCodes(code)) == 1:
		if err := deps.Courses.DeleteCoursesByCode(deps.Ctx, code); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdubot.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted course %s\n", code)
	case len(mdubot.DetectProgramCodes(code)) == 1:
		if err := deps.Programs.DeleteProgramsByCode(deps.Ctx, code); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdubot.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted program %s\n", code)
	default:
		return mdubot.Errorf(mdubot.EINVALID, "%q is not a course or program code", c.Code)
	}

	return nil
}
