package commands

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Username,
	Done,
	Queue,
	Leaderboard,
	Status,
	Rules,
	Help,
	Version,
	Adjust,
}
