package console

import "github.com/flipperlabs/flipper-console/internal/flipper"

// fetchResolvedFlags pulls the dashboard view for one user. It is the
// primary visible fetch: the loading indicator covers exactly this call and
// is cleared on every exit path. Any transport or parse failure is replaced
// by the four baseline flags, all off, with dashboard metadata zeroed.
func (c *Console) fetchResolvedFlags(userID string) {
	c.state.setLoading(true)
	defer c.state.setLoading(false)

	data, err := c.client.Dashboard(userID)
	if err != nil {
		c.logger.Warn("dashboard fetch failed, using fallback flags",
			"user_id", userID, "err", err)
		c.state.replaceDashboard(flipper.DashboardData{
			Features: flipper.FallbackFeatures(),
			UserID:   userID,
		})
		return
	}
	c.state.replaceDashboard(data)
}

// fetchExperiment pulls the A/B assignment for one user, defaulting to the
// control experience on failure.
func (c *Console) fetchExperiment(userID string) {
	data, err := c.client.Experiment(userID)
	if err != nil {
		c.logger.Warn("experiment fetch failed, using default assignment",
			"user_id", userID, "err", err)
		c.state.replaceExperiment(flipper.DefaultExperiment())
		return
	}
	c.state.replaceExperiment(data)
}

// RefreshCatalogue pulls the full flag catalogue, independent of any user.
// On failure the static fallback catalogue replaces the view; it is fixed
// data, so mutations made just before a failed fetch are not reflected.
func (c *Console) RefreshCatalogue() {
	flags, err := c.client.Features()
	if err != nil {
		c.logger.Warn("catalogue fetch failed, using static fallback", "err", err)
		c.state.replaceCatalogue(flipper.FallbackCatalogue())
		return
	}
	c.state.replaceCatalogue(flags)
}
