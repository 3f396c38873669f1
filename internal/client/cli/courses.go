package cli

import (
	"context"
	"fmt"
)

func (a *App) ListCourses(ctx context.Context) error {
	list, err := a.courses.List(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No courses")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%s  %s  %s\n", c.ID, c.Title, c.Description)
	}
	return nil
}

func (a *App) CreateCourse(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter course title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter course description", a.out)
	if err != nil {
		return err
	}

	c, err := a.courses.Create(ctx, title, description)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Created course %s (%s)\n", c.Title, c.ID)
	return nil
}

func (a *App) Enroll(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter course title", a.out)
	if err != nil {
		return err
	}

	c, err := a.courses.Enroll(ctx, title)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Enrolled in %s (%s)\n", c.Title, c.ID)
	return nil
}
