package views

const stylesheet = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:"Segoe UI",Tahoma,Geneva,Verdana,sans-serif;line-height:1.6;color:#2c3e50;background:#f5f7fa}
.navbar{display:flex;align-items:center;gap:2rem;padding:1rem 2rem;background:#2c3e50}
.navbar a{color:#fff;text-decoration:none}
.navbar ul{display:flex;gap:1.5rem;list-style:none}
.brand{font-weight:700;font-size:1.2rem}
.container{max-width:720px;margin:2rem auto;padding:0 1rem}
h1{margin-bottom:.5rem}
.intro{margin-bottom:1.5rem;color:#7f8c8d}
.form{background:#fff;padding:2rem;border-radius:8px;box-shadow:0 2px 10px rgba(0,0,0,.08)}
.form-group{margin-bottom:1.25rem}
.form-group label{display:block;margin-bottom:.4rem;font-weight:600}
.form-group input,.form-group select,.form-group textarea{width:100%;padding:.7rem;border:2px solid #dfe6e9;border-radius:5px;font-size:1rem;font-family:inherit}
.form-group.error input,.form-group.error select,.form-group.error textarea{border-color:#e74c3c}
.form-group.success input,.form-group.success select,.form-group.success textarea{border-color:#2ecc71}
.error-message{color:#e74c3c;font-size:.875rem;margin-top:.3rem;display:block}
.char-counter{text-align:right;font-size:.85rem;margin-top:.3rem}
.radio-group{display:flex;flex-wrap:wrap;gap:1rem}
.radio-option,.checkbox-label{display:flex;align-items:center;gap:.5rem;font-weight:400}
.radio-option input,.checkbox-label input{width:auto}
.toggle-section{margin:-.5rem 0 1.25rem;padding:1rem;background:#ecf0f1;border-radius:5px;text-align:center}
.toggle-section img{max-width:220px}
.file-upload{display:block;padding:1rem;border:2px dashed #dfe6e9;border-radius:5px;cursor:pointer;text-align:center}
.file-upload input{display:none}
.submit-btn{width:100%;padding:.9rem;border:0;border-radius:5px;background:#3498db;color:#fff;font-size:1rem;cursor:pointer}
.submit-btn:hover{background:#2980b9}
.success-message{display:none;padding:2rem;background:#d4edda;border-radius:8px;text-align:center;color:#155724}
.success-message.show{display:block}
.form-summary{margin-bottom:1.25rem;padding:1rem 1.25rem;border-left:4px solid #e74c3c;background:#fdecea;border-radius:5px}
.form-summary ul{margin:.5rem 0 0 1.25rem}
.form-list{list-style:none}
.form-list li{margin:.5rem 0}
#alerts{position:fixed;top:1rem;right:1rem;display:flex;flex-direction:column;gap:.5rem}
.alert{position:static;padding:1rem 1.25rem;border:0;border-left:4px solid #e74c3c;border-radius:5px;box-shadow:0 2px 10px rgba(0,0,0,.15)}
.alert-warning{border-left-color:#f39c12}
.alert button{margin-top:.5rem;padding:.3rem 1rem}
`
