// Package client implements the client side of the Big Two table protocol.
//
// The client performs the following steps:
//  1. Ask the local player for a display name.
//  2. Connect to the server (127.0.0.1:2396 unless configured otherwise).
//  3. Receive the ROSTER message, which assigns the local seat and names every seat.
//  4. Send JOIN with the display name. The server decides the seat, so the origin is -1.
//  5. Receive the server's echo of our own JOIN and answer with READY.
//  6. Follow the table: JOIN and QUIT of other players, READY announcements,
//     START with the dealt deck, MOVE for every play and MSG for chat.
//  7. When a player quits before the game is over, send READY again so the lobby can refill the seat.
//
// Messages from the server are handled by a single receive loop, one at a
// time and in arrival order. Moves and chat typed by the user are sent from
// the caller's goroutine; both paths share one write lock in the channel so
// frames never interleave.
//
// When the receive loop ends, because the server closed the connection, a
// frame could not be decoded, a reply could not be sent, or Close was called,
// the UI is told through SessionEnded and Done is closed. There is no
// reconnection: the caller may Connect again to start a new session.
package client
