package tui

// Rules is the rules text shown from the main menu
const Rules = `Blackjack Rules:

1. The goal is to get as close to 21 points as possible without going over.
2. Face cards are worth 10, Aces are 1 or 11, other cards are face value.
3. Press 'h' to Hit and draw another card, or 's' to Stand on your hand.
4. If you go over 21, you 'bust' and lose.
5. After you stand, the dealer plays. They must hit on 16 and stand on 17.
6. Closest to 21 without busting wins!`
