package board

// This file contains some sample maps, used mostly for testing.

const (
	// Contest1 is the first sample mine from the 2012 contest.
	Contest1 = `######
#. *R#
#  \.#
#\ * #
L  .\#
######
`

	// Corridor has a single lambda between the robot and the lift.
	Corridor = `#######
#R \ L#
#######
`

	// RockPush has a rock right of the robot with room to push it.
	RockPush = `#######
#R*  L#
#######
`

	// RockBlocked has a rock right of the robot with a wall behind it.
	RockBlocked = `#####
#R*#L
#####
`

	// Avalanche has rocks stacked over a lambda and over other rocks.
	Avalanche = `#######
#  *  #
# *\* #
# **  #
#R   L#
#######
`

	// Ragged has rows of different lengths.
	Ragged = `#####
#R\
#  L#
#####
`
)
