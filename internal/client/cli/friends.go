package cli

import "context"

// Friends loads and prints the friends list.
func (a *App) Friends(ctx context.Context) error {
	if err := a.friends.Load(ctx); err != nil {
		a.fail(ctx, err)
		return err
	}

	friends := a.friends.List()
	if len(friends) == 0 {
		printlnFn("No friends yet.")
		return nil
	}
	for _, f := range friends {
		printlnFn("  " + f.Label())
	}
	return nil
}

// AddFriend links a user by name. The entry shows up in the list right away
// and is withdrawn if the server rejects it.
func (a *App) AddFriend(ctx context.Context, username string) error {
	msg, err := a.friends.Add(ctx, username)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	if msg == "" {
		msg = "Friend added."
	}
	a.banner.Show(msg)
	return nil
}
